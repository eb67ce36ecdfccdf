// ABOUTME: BlogWriter turns a transcript into a markdown blog post with one generator call
// ABOUTME: Long transcripts are reduced to their leading chunks; output can be rendered to HTML
package core

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/llm"
	"github.com/harper/tubewise/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	// BlogTranscriptLimit is the transcript length above which only leading chunks are used
	BlogTranscriptLimit = 4000
	// BlogMaxChunks is how many leading chunks feed a long transcript's post
	BlogMaxChunks = 4

	blogSystemPrompt = "You are a professional blog writer who creates engaging and well-structured content."
)

// BlogFormat selects the rendering of a generated post
type BlogFormat string

const (
	BlogFormatMarkdown BlogFormat = "markdown"
	BlogFormatHTML     BlogFormat = "html"
)

// ParseBlogFormat accepts markdown (default) or html
func ParseBlogFormat(s string) (BlogFormat, error) {
	switch BlogFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", BlogFormatMarkdown, "md":
		return BlogFormatMarkdown, nil
	case BlogFormatHTML:
		return BlogFormatHTML, nil
	}
	return "", models.NewError(models.KindInvalidArgument, "parse blog format", fmt.Errorf("unknown format %q (want markdown or html)", s))
}

// BlogRequest holds the options for one blog post
type BlogRequest struct {
	Tone   models.Tone
	Length models.Length
	Format BlogFormat
}

// normalize fills defaults and rejects unknown values
func (r BlogRequest) normalize() (BlogRequest, error) {
	tone, err := models.ParseTone(string(r.Tone))
	if err != nil {
		return r, err
	}
	length, err := models.ParseLength(string(r.Length))
	if err != nil {
		return r, err
	}
	format, err := ParseBlogFormat(string(r.Format))
	if err != nil {
		return r, err
	}
	return BlogRequest{Tone: tone, Length: length, Format: format}, nil
}

// BlogWriter generates blog posts from transcripts
type BlogWriter struct {
	generator llm.Generator
	chunker   *Chunker
	md        goldmark.Markdown
}

// NewBlogWriter creates a BlogWriter
func NewBlogWriter(generator llm.Generator, chunker *Chunker) *BlogWriter {
	if chunker == nil {
		chunker = NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &BlogWriter{
		generator: generator,
		chunker:   chunker,
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Write generates a post for transcript text
func (b *BlogWriter) Write(ctx context.Context, transcript string, req BlogRequest) (string, error) {
	req, err := req.normalize()
	if err != nil {
		return "", err
	}

	source, err := b.condense(transcript)
	if err != nil {
		return "", models.NewError(models.KindGeneration, "generate blog post", err)
	}

	post, err := b.generator.Complete(ctx, blogSystemPrompt, blogPrompt(source, req))
	if err != nil {
		return "", models.NewError(models.KindGeneration, "generate blog post", err)
	}
	post = strings.TrimSpace(post)

	log.Debug().
		Str("tone", string(req.Tone)).
		Str("length", string(req.Length)).
		Int("words", len(strings.Fields(post))).
		Msg("Generated blog post")

	if req.Format == BlogFormatHTML {
		return b.RenderHTML(post)
	}
	return post, nil
}

// RenderHTML converts markdown to HTML with GitHub flavored extensions
func (b *BlogWriter) RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// condense keeps short transcripts whole and joins the leading chunks of long ones
func (b *BlogWriter) condense(transcript string) (string, error) {
	if utf8.RuneCountInString(transcript) <= BlogTranscriptLimit {
		return transcript, nil
	}
	chunks, err := b.chunker.Split(transcript)
	if err != nil {
		return "", err
	}
	if len(chunks) > BlogMaxChunks {
		chunks = chunks[:BlogMaxChunks]
	}
	return strings.Join(chunks, " "), nil
}

func blogPrompt(transcript string, req BlogRequest) string {
	return fmt.Sprintf(`Generate a %[1]s blog post (approximately %[2]d words) in a %[3]s tone based on the following transcript.

Guidelines:
1. Write an engaging introduction that hooks the reader
2. Break down the content into clear, logical sections with headings
3. Include relevant examples and key points from the video
4. Add a conclusion that summarizes the main takeaways
5. Maintain the specified %[3]s tone throughout
6. Format the text with proper markdown

Transcript: %[4]s`, req.Length, req.Length.TargetWords(), req.Tone, transcript)
}
