package jsearch

import "strings"

type Jobs struct {
	Items []*Job
}

// Job is a single JSearch listing. Every field is optional in the API, so a
// nil pointer means the key was absent or null.
type Job struct {
	ID             *string  `json:"job_id,omitempty"`
	Title          *string  `json:"job_title,omitempty"`
	EmployerName   *string  `json:"employer_name,omitempty"`
	City           *string  `json:"job_city,omitempty"`
	State          *string  `json:"job_state,omitempty"`
	Country        *string  `json:"job_country,omitempty"`
	ApplyLink      *string  `json:"job_apply_link,omitempty"`
	Description    *string  `json:"job_description,omitempty"`
	EmploymentType *string  `json:"job_employment_type,omitempty"`
	IsRemote       *bool    `json:"job_is_remote,omitempty"`
	PostedAtUTC    *string  `json:"job_posted_at_datetime_utc,omitempty"`
	MinSalary      *float64 `json:"job_min_salary,omitempty"`
	MaxSalary      *float64 `json:"job_max_salary,omitempty"`
	SalaryCurrency *string  `json:"job_salary_currency,omitempty"`
	Publisher      *string  `json:"job_publisher,omitempty"`
}

// GetDescription returns the description or an empty string when missing.
func (j *Job) GetDescription() string {
	if j == nil || j.Description == nil {
		return ""
	}
	return *j.Description
}

// HasDescription reports whether the listing carries a non-empty description.
func (j *Job) HasDescription() bool {
	return j.GetDescription() != ""
}

func (j *Job) GetTitle() string {
	if j == nil || j.Title == nil {
		return ""
	}
	return *j.Title
}

func (v *Jobs) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// ExcludeWithoutDescription drops listings that cannot be scored and returns
// their titles. Order of the remaining items is preserved.
func (v *Jobs) ExcludeWithoutDescription() []string {
	var excluded []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if job == nil {
			continue
		}
		if !job.HasDescription() {
			excluded = append(excluded, strings.TrimSpace(job.GetTitle()))
			continue
		}
		kept = append(kept, job)
	}

	// clear the tail so dropped listings can be collected
	for i := len(kept); i < len(v.Items); i++ {
		v.Items[i] = nil
	}
	v.Items = kept

	return excluded
}
