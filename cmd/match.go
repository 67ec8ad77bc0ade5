package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/agent"
	"github.com/jobmatchpro/backend/sources"
)

var (
	onlyPaid    bool
	withProfile bool
)

var matchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "Match a résumé file once and print the listings as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolVar(&onlyPaid, "only-paid", false, "keep listings with salary information only")
	matchCmd.Flags().BoolVar(&withProfile, "with-profile", false, "print the profile, queries and fetch stats along with the listings")
}

func match(cmd *cobra.Command, path string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	jobAgent := agent.NewJobAgent(cfg, sources.FromConfig(cfg, logger), logger)

	output, err := jobAgent.Match(cmd.Context(), agent.MatchInput{
		CVFileData: data,
		CVFileName: filepath.Base(path),
		OnlyPaid:   onlyPaid,
	})
	if err != nil {
		return err
	}

	logger.Debug("match finished", zap.Int("results", len(output.Results)))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if withProfile {
		return enc.Encode(output)
	}
	return enc.Encode(output.Results)
}
