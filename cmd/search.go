package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/job-match/internal/logger"
	"github.com/spigell/job-match/internal/matching"
)

const PromptExit = "exit"

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Run a single search and print the matches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		search(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("role", "r", nil, "role appended to the query, may be repeated")
	searchCmd.Flags().BoolP("interactive", "i", false, "choose a match and print its apply link")
}

func search(cmd *cobra.Command, query string) {
	ctx := context.Background()

	// stdout carries the result.
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logger.Stderr)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	roles, err := cmd.Flags().GetStringSlice("role")
	if err != nil {
		logger.Fatal("reading roles", zap.Error(err))
	}

	svc, err := newService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the match service", zap.Error(err))
	}

	resp, err := svc.SearchJobs(ctx, &matching.SearchRequest{Query: query, Roles: roles})
	if err != nil {
		logger.Fatal("searching", zap.Error(err))
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := pick(resp); err != nil && !errors.Is(err, promptui.ErrInterrupt) {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	if err := printMatches(cmd.OutOrStdout(), resp); err != nil {
		logger.Fatal("printing matches", zap.Error(err))
	}
}

func printMatches(w io.Writer, resp *matching.SearchResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// pick lets the user browse matches until exit is chosen.
func pick(resp *matching.SearchResponse) error {
	if resp.Len() == 0 {
		fmt.Println("no matches")
		return nil
	}

	items := make([]string, 0, resp.Len()+1)
	for _, m := range resp.Matches {
		items = append(items, matchLabel(m))
	}
	items = append(items, PromptExit)

	prompt := promptui.Select{
		Label: "Choose a match and press ENTER",
		Items: items,
		Size:  len(items),
	}

	for {
		idx, choice, err := prompt.Run()
		if err != nil {
			return err
		}
		if choice == PromptExit {
			return nil
		}

		fmt.Println(deref(resp.Matches[idx].URL, "no apply link"))
	}
}

func matchLabel(m matching.Match) string {
	parts := []string{
		deref(m.Title, "untitled"),
		deref(m.Company, "unknown company"),
		deref(m.Location, "unknown location"),
	}
	return fmt.Sprintf("%6.2f  %s", m.MatchScore, strings.Join(parts, " / "))
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
