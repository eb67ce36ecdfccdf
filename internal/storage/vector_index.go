// ABOUTME: In-memory similarity index over one transcript's chunks, backed by chromem-go
// ABOUTME: Built once from chunks and queried by cosine similarity; never mutated after build
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/harper/tubewise/internal/llm"
	"github.com/harper/tubewise/internal/models"
	"github.com/philippgille/chromem-go"
	"golang.org/x/sync/errgroup"
)

// DefaultTopK is the number of chunks returned when a query does not ask for a count
const DefaultTopK = 3

// VectorIndex holds embedded chunks of a single video
type VectorIndex struct {
	videoID    string
	embedder   llm.Embedder
	collection *chromem.Collection
	chunks     map[string]models.Chunk
}

// BuildIndex embeds every chunk and loads them into a fresh collection.
// All chunks must belong to the same video.
func BuildIndex(ctx context.Context, embedder llm.Embedder, chunks []models.Chunk) (*VectorIndex, error) {
	if len(chunks) == 0 {
		return nil, models.NewError(models.KindIndexBuild, "build index", errors.New("no chunks to index"))
	}

	videoID := chunks[0].VideoID
	byID := make(map[string]models.Chunk, len(chunks))
	for _, ch := range chunks {
		if ch.VideoID != videoID {
			return nil, models.NewError(models.KindIndexBuild, "build index",
				fmt.Errorf("chunk %s belongs to video %q, index is for %q", ch.ChunkID, ch.VideoID, videoID))
		}
		if _, dup := byID[ch.ChunkID]; dup {
			return nil, models.NewError(models.KindIndexBuild, "build index", fmt.Errorf("duplicate chunk id %s", ch.ChunkID))
		}
		byID[ch.ChunkID] = ch
	}

	vectors := make([][]float32, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, ch := range chunks {
		g.Go(func() error {
			vec, err := embedder.Embed(gctx, ch.Content)
			if err != nil {
				return err
			}
			if len(vec) == 0 {
				return models.NewError(models.KindEmbedding, "embed chunk", fmt.Errorf("empty vector for %s", ch.ChunkID))
			}
			vectors[i] = normalize(vec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, models.NewError(models.KindIndexBuild, "build index", err)
	}

	dim := len(vectors[0])
	docs := make([]chromem.Document, len(chunks))
	for i, ch := range chunks {
		if len(vectors[i]) != dim {
			return nil, models.NewError(models.KindIndexBuild, "build index",
				fmt.Errorf("embedding dimension mismatch: %d vs %d", len(vectors[i]), dim))
		}
		docs[i] = chromem.Document{
			ID:        ch.ChunkID,
			Content:   ch.Content,
			Embedding: vectors[i],
			Metadata: map[string]string{
				"video_id": ch.VideoID,
				"index":    strconv.Itoa(ch.Index),
			},
		}
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection("transcript-"+uuid.NewString(), map[string]string{"video_id": videoID}, embedder.Embed)
	if err != nil {
		return nil, models.NewError(models.KindIndexBuild, "build index", fmt.Errorf("create collection: %w", err))
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, models.NewError(models.KindIndexBuild, "build index", fmt.Errorf("add documents: %w", err))
	}

	return &VectorIndex{
		videoID:    videoID,
		embedder:   embedder,
		collection: collection,
		chunks:     byID,
	}, nil
}

// VideoID returns the video whose chunks the index holds
func (ix *VectorIndex) VideoID() string {
	return ix.videoID
}

// Len returns the number of indexed chunks
func (ix *VectorIndex) Len() int {
	return len(ix.chunks)
}

// Query returns up to k chunks most similar to text, most similar first.
// k <= 0 means DefaultTopK; k above Len is clamped.
func (ix *VectorIndex) Query(ctx context.Context, text string, k int) ([]models.SearchResult, error) {
	if ix == nil || ix.collection == nil {
		return nil, errors.New("query on unbuilt index")
	}
	if k <= 0 {
		k = DefaultTopK
	}
	if k > ix.Len() {
		k = ix.Len()
	}

	vec, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	results, err := ix.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: normalize(vec),
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	out := make([]models.SearchResult, 0, len(results))
	for _, r := range results {
		ch, ok := ix.chunks[r.ID]
		if !ok {
			continue
		}
		out = append(out, models.SearchResult{Chunk: ch, Similarity: r.Similarity})
	}

	// Order by similarity, earlier chunks first on ties
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].Chunk.Index < out[j].Chunk.Index
	})
	return out, nil
}

// normalize scales v to unit length so dot product equals cosine similarity
func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}
