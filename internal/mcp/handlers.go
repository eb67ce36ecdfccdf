// ABOUTME: MCP tool handler implementations for the transcript server
// ABOUTME: Each handler validates arguments, calls the service and shapes the tool result
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/harper/tubewise/internal/core"
	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	svc      *service.Service
	inflight *sync.WaitGroup // Track running tool calls
}

// GetTranscript handles the get_transcript tool
func (h *Handlers) GetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defer h.track()()

	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id argument is required and must be a string"), nil
	}

	text, err := h.svc.Transcript(ctx, videoID)
	if err != nil {
		return toolError("fetching transcript", err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// GenerateBlogPost handles the generate_blog_post tool
func (h *Handlers) GenerateBlogPost(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defer h.track()()

	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id argument is required and must be a string"), nil
	}

	req := service.BlogRequest{
		Tone:   models.Tone(request.GetString("tone", string(models.DefaultTone))),
		Length: models.Length(request.GetString("length", string(models.DefaultLength))),
		Format: core.BlogFormat(request.GetString("format", string(core.BlogFormatMarkdown))),
	}

	post, err := h.svc.Blog(ctx, videoID, req)
	if err != nil {
		return toolError("generating blog post", err), nil
	}
	return mcp.NewToolResultText(post), nil
}

// AnswerQuestion handles the answer_question tool
func (h *Handlers) AnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defer h.track()()

	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id argument is required and must be a string"), nil
	}
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	answer, err := h.svc.Ask(ctx, videoID, question)
	if err != nil {
		return toolError("answering question", err), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// AnalyzeSentiment handles the analyze_sentiment tool
func (h *Handlers) AnalyzeSentiment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defer h.track()()

	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id argument is required and must be a string"), nil
	}

	result, err := h.svc.Sentiment(ctx, videoID)
	if err != nil {
		return toolError("analyzing sentiment", err), nil
	}

	responseJSON, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GenerateWordCloud handles the generate_word_cloud tool
func (h *Handlers) GenerateWordCloud(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defer h.track()()

	videoID, err := request.RequireString("video_id")
	if err != nil {
		return mcp.NewToolResultError("video_id argument is required and must be a string"), nil
	}

	img, err := h.svc.WordCloud(ctx, videoID)
	if err != nil {
		return toolError("generating word cloud", err), nil
	}
	return mcp.NewToolResultImage("Word cloud for "+videoID, img, "image/png"), nil
}

// Shutdown waits for running tool calls to complete
func (h *Handlers) Shutdown() {
	log.Info().Msg("Waiting for running tool calls to complete...")
	h.inflight.Wait()
	log.Info().Msg("All tool calls completed")
}

func (h *Handlers) track() func() {
	h.inflight.Add(1)
	return h.inflight.Done
}

// toolError shapes a failure into an error result, naming missing transcripts plainly
func toolError(action string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, models.ErrTranscriptNotFound):
		return mcp.NewToolResultError(fmt.Sprintf("transcript not found: %v", err))
	case errors.Is(err, models.ErrInvalidArgument):
		return mcp.NewToolResultError(fmt.Sprintf("invalid argument: %v", err))
	}
	return mcp.NewToolResultError(fmt.Sprintf("error %s: %v", action, err))
}
