// ABOUTME: CLI command to write a blog post from a video
// ABOUTME: Tone and length select the style; --html renders the markdown
package commands

import (
	"fmt"

	"github.com/harper/tubewise/internal/core"
	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/service"
	"github.com/spf13/cobra"
)

var (
	blogTone   string
	blogLength string
	blogHTML   bool
)

// NewBlogCmd creates the blog command
func NewBlogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blog <video>",
		Short: "Write a blog post from a video",
		Long: `Generate a markdown blog post from a YouTube video's transcript.

Tones: formal, casual, informative (default)
Lengths: short (~600 words), medium (~1200, default), long (~1800)

Examples:
  tubewise blog dQw4w9WgXcQ
  tubewise blog --tone casual --length short dQw4w9WgXcQ
  tubewise blog --html dQw4w9WgXcQ > post.html`,
		Args: cobra.ExactArgs(1),
		RunE: runBlog,
	}

	cmd.Flags().StringVar(&blogTone, "tone", string(models.DefaultTone), "Writing tone: formal, casual or informative")
	cmd.Flags().StringVar(&blogLength, "length", string(models.DefaultLength), "Post length: short, medium or long")
	cmd.Flags().BoolVar(&blogHTML, "html", false, "Render the post as HTML")

	return cmd
}

func runBlog(cmd *cobra.Command, args []string) error {
	req := service.BlogRequest{
		Tone:   models.Tone(blogTone),
		Length: models.Length(blogLength),
		Format: core.BlogFormatMarkdown,
	}
	if blogHTML {
		req.Format = core.BlogFormatHTML
	}

	svc, _, err := buildService()
	if err != nil {
		return err
	}

	post, err := svc.Blog(cmd.Context(), args[0], req)
	if err != nil {
		return fmt.Errorf("generating blog post: %w", err)
	}

	if jsonOutput() {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"blog_post": post})
	}
	fmt.Fprintln(cmd.OutOrStdout(), post)
	return nil
}
