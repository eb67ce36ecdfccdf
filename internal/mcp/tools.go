// ABOUTME: MCP tool definitions and registration for the transcript server
// ABOUTME: Defines JSON schemas for the five video tools
package mcp

import (
	"sync"

	"github.com/harper/tubewise/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

var videoIDProperty = map[string]interface{}{
	"type":        "string",
	"description": "YouTube video ID or URL",
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, svc *service.Service) *Handlers {
	handlers := &Handlers{
		svc:      svc,
		inflight: &sync.WaitGroup{},
	}

	for _, t := range tools() {
		switch t.Name {
		case "get_transcript":
			server.AddTool(t, handlers.GetTranscript)
		case "generate_blog_post":
			server.AddTool(t, handlers.GenerateBlogPost)
		case "answer_question":
			server.AddTool(t, handlers.AnswerQuestion)
		case "analyze_sentiment":
			server.AddTool(t, handlers.AnalyzeSentiment)
		case "generate_word_cloud":
			server.AddTool(t, handlers.GenerateWordCloud)
		}
	}

	return handlers
}

func tools() []mcp.Tool {
	return []mcp.Tool{
		// 1. get_transcript - fetch and cache the transcript
		{
			Name:        "get_transcript",
			Description: "Fetch the transcript of a YouTube video. The transcript is cached and indexed for follow-up questions.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"video_id": videoIDProperty,
				},
				Required: []string{"video_id"},
			},
		},
		// 2. generate_blog_post - turn the transcript into a blog post
		{
			Name:        "generate_blog_post",
			Description: "Write a markdown blog post based on a YouTube video's transcript.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"video_id": videoIDProperty,
					"tone": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"formal", "casual", "informative"},
						"description": "Writing tone (default: informative)",
						"default":     "informative",
					},
					"length": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"short", "medium", "long"},
						"description": "Post length: short ~600, medium ~1200, long ~1800 words (default: medium)",
						"default":     "medium",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"markdown", "html"},
						"description": "Output format (default: markdown)",
						"default":     "markdown",
					},
				},
				Required: []string{"video_id"},
			},
		},
		// 3. answer_question - retrieval augmented QA over the transcript
		{
			Name:        "answer_question",
			Description: "Answer a question about a YouTube video using the most relevant parts of its transcript.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"video_id": videoIDProperty,
					"question": map[string]interface{}{
						"type":        "string",
						"description": "Question about the video",
					},
				},
				Required: []string{"video_id", "question"},
			},
		},
		// 4. analyze_sentiment - overall sentiment of the transcript
		{
			Name:        "analyze_sentiment",
			Description: "Analyze the overall sentiment of a YouTube video's transcript.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"video_id": videoIDProperty,
				},
				Required: []string{"video_id"},
			},
		},
		// 5. generate_word_cloud - PNG word cloud of the transcript
		{
			Name:        "generate_word_cloud",
			Description: "Render a word cloud image of the most frequent words in a YouTube video's transcript.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"video_id": videoIDProperty,
				},
				Required: []string{"video_id"},
			},
		},
	}
}
