package matching

import (
	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/jsearch"
)

// Step describes the result of a pipeline stage.
type Step struct {
	Name    string
	Initial int
	Dropped int
	Left    int
}

func (s Step) fields() []zap.Field {
	return []zap.Field{
		zap.String("name", s.Name),
		zap.Int("initial", s.Initial),
		zap.Int("dropped", s.Dropped),
		zap.Int("left", s.Left),
	}
}

// dropUndescribed removes listings without a description. They cannot be scored.
func dropUndescribed(jobs *jsearch.Jobs, logger *zap.Logger) Step {
	initial := jobs.Len()
	excluded := jobs.ExcludeWithoutDescription()

	if len(excluded) > 0 {
		logger.Debug("excluding listings without description",
			zap.Strings("excluded_titles", excluded),
			zap.Int("listings_left", jobs.Len()),
		)
	}

	return Step{Name: "description", Initial: initial, Dropped: len(excluded), Left: jobs.Len()}
}
