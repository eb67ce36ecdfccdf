// ABOUTME: Answerer answers questions about a transcript by retrieving relevant chunks
// ABOUTME: Supports a prebuilt index or a transient one built from the transcript on demand
package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harper/tubewise/internal/llm"
	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/storage"
	"github.com/rs/zerolog/log"
)

const opAnswer = "answer question"

// Answerer runs retrieval-augmented question answering
type Answerer struct {
	generator llm.Generator
	embedder  llm.Embedder
	chunker   *Chunker
	hydrator  *ContextHydrator
	topK      int
}

// NewAnswerer creates an Answerer. topK <= 0 uses storage.DefaultTopK.
func NewAnswerer(generator llm.Generator, embedder llm.Embedder, chunker *Chunker, topK int) *Answerer {
	if chunker == nil {
		chunker = NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	}
	if topK <= 0 {
		topK = storage.DefaultTopK
	}
	return &Answerer{
		generator: generator,
		embedder:  embedder,
		chunker:   chunker,
		hydrator:  NewContextHydrator(DefaultContextBudget),
		topK:      topK,
	}
}

// BuildIndex chunks a transcript and embeds it into a new index
func (a *Answerer) BuildIndex(ctx context.Context, t *models.Transcript) (*storage.VectorIndex, error) {
	start := time.Now()
	chunks, err := a.chunker.ChunkTranscript(t)
	if err != nil {
		return nil, models.NewError(models.KindIndexBuild, "build index", err)
	}
	ix, err := storage.BuildIndex(ctx, a.embedder, chunks)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("video_id", t.VideoID).
		Int("chunks", ix.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Built transcript index")
	return ix, nil
}

// Answer retrieves the top chunks for question from index and asks the generator
func (a *Answerer) Answer(ctx context.Context, question string, index *storage.VectorIndex) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer,
			models.NewError(models.KindInvalidArgument, "validate question", errors.New("question is empty")))
	}
	if index == nil {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer, errors.New("no index"))
	}

	results, err := index.Query(ctx, question, a.topK)
	if err != nil {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer, err)
	}

	system, user := a.hydrator.Hydrate(question, results)
	answer, err := a.generator.Complete(ctx, system, user)
	if err != nil {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer, err)
	}

	log.Debug().
		Str("video_id", index.VideoID()).
		Int("retrieved", len(results)).
		Msg("Answered question")
	return strings.TrimSpace(answer), nil
}

// AnswerFromTranscript builds a transient index over the transcript and answers from it
func (a *Answerer) AnswerFromTranscript(ctx context.Context, question string, t *models.Transcript) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer,
			models.NewError(models.KindInvalidArgument, "validate question", errors.New("question is empty")))
	}
	if t == nil {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer, errors.New("no transcript"))
	}

	ix, err := a.BuildIndex(ctx, t)
	if err != nil {
		return "", models.NewError(models.KindQuestionAnswering, opAnswer, err)
	}
	return a.Answer(ctx, question, ix)
}
