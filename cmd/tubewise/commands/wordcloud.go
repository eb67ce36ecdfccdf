// ABOUTME: CLI command to render a word cloud for a video
// ABOUTME: Writes a PNG file with --out, otherwise prints the base64 image
package commands

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var wordCloudOut string

// NewWordCloudCmd creates the wordcloud command
func NewWordCloudCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordcloud <video>",
		Short: "Render a word cloud of a video's transcript",
		Long: `Render an 800x400 PNG word cloud of the most frequent words in a transcript.

Examples:
  tubewise wordcloud --out cloud.png dQw4w9WgXcQ
  tubewise wordcloud dQw4w9WgXcQ | base64 -d > cloud.png`,
		Args: cobra.ExactArgs(1),
		RunE: runWordCloud,
	}

	cmd.Flags().StringVarP(&wordCloudOut, "out", "o", "", "Write the PNG to this file")

	return cmd
}

func runWordCloud(cmd *cobra.Command, args []string) error {
	svc, _, err := buildService()
	if err != nil {
		return err
	}

	img, err := svc.WordCloud(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("generating word cloud: %w", err)
	}

	if wordCloudOut != "" {
		data, err := base64.StdEncoding.DecodeString(img)
		if err != nil {
			return fmt.Errorf("decoding image: %w", err)
		}
		if err := os.WriteFile(wordCloudOut, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", wordCloudOut, err)
		}
		if jsonOutput() {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"path": wordCloudOut, "bytes": len(data)})
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", wordCloudOut, len(data))
		}
		return nil
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"word_cloud": img})
	}
	fmt.Fprintln(cmd.OutOrStdout(), img)
	return nil
}
