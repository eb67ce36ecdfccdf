// ABOUTME: CLI command to analyze a video's sentiment
// ABOUTME: Prints the three line summary or the structured result as JSON
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSentimentCmd creates the sentiment command
func NewSentimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentiment <video>",
		Short: "Analyze the overall sentiment of a video",
		Long: `Classify the overall sentiment of a YouTube video's transcript.

Examples:
  tubewise sentiment dQw4w9WgXcQ
  tubewise sentiment --format json dQw4w9WgXcQ`,
		Args: cobra.ExactArgs(1),
		RunE: runSentiment,
	}

	return cmd
}

func runSentiment(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	result, err := svc.Sentiment(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("analyzing sentiment: %w", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Format())
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "(source: %s)\n", result.Source)
	}
	return nil
}
