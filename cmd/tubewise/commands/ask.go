// ABOUTME: CLI command to ask a question about a video
// ABOUTME: Answers come from the transcript chunks most relevant to the question
package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <video> <question...>",
		Short: "Ask a question about a video",
		Long: `Answer a question using the parts of a video's transcript most relevant to it.

The transcript is chunked and embedded, the closest chunks are retrieved,
and the language model answers from those chunks only.

Examples:
  tubewise ask dQw4w9WgXcQ "What is the song about?"
  tubewise ask https://youtu.be/dQw4w9WgXcQ who is singing`,
		Args: cobra.MinimumNArgs(2),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := joinArgs(args[1:])
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	svc, _, err := buildService()
	if err != nil {
		return err
	}

	log.Debug().Str("video", args[0]).Str("question", truncate(question, 80)).Msg("Asking")
	answer, err := svc.Ask(cmd.Context(), args[0], question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"question": question, "answer": answer})
	}
	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
