// ABOUTME: CLI command to print a video's transcript
// ABOUTME: Plain text by default, timestamped lines or JSON on request
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showTimestamps bool

// NewTranscriptCmd creates the transcript command
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <video>",
		Short: "Print a video's transcript",
		Long: `Fetch and print the transcript of a YouTube video.

The video may be given as an ID or any common YouTube URL.

Examples:
  tubewise transcript dQw4w9WgXcQ
  tubewise transcript --timestamps https://youtu.be/dQw4w9WgXcQ
  tubewise transcript --format json dQw4w9WgXcQ`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscript,
	}

	cmd.Flags().BoolVar(&showTimestamps, "timestamps", false, "Prefix each caption line with its start time")

	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	t, err := svc.Fetch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("fetching transcript: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return writeJSON(out, t)
	}

	if showTimestamps {
		for _, e := range t.Entries {
			fmt.Fprintf(out, "[%s] %s\n", formatTimestamp(e.Start), e.Text)
		}
		return nil
	}

	fmt.Fprintln(out, t.Text)
	return nil
}
