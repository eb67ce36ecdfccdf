// ABOUTME: Service ties transcript fetching, per-video sessions and the content operations together
// ABOUTME: Every public operation resolves the video's session first and then runs one operation on it
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/tubewise/internal/config"
	"github.com/harper/tubewise/internal/core"
	"github.com/harper/tubewise/internal/llm"
	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/storage"
	"github.com/harper/tubewise/internal/transcript"
	"github.com/harper/tubewise/internal/wordcloud"
	"github.com/rs/zerolog/log"
)

// BlogRequest holds the options for a blog post
type BlogRequest = core.BlogRequest

// Options wires a Service. Source, Generator and Embedder are required.
type Options struct {
	Source    transcript.Source
	Generator llm.Generator
	Embedder  llm.Embedder
	Store     storage.SessionStore
	Chunker   *core.Chunker
	TopK      int
	WordCloud *wordcloud.Renderer
}

// Service runs transcript operations for videos
type Service struct {
	source    transcript.Source
	store     storage.SessionStore
	answerer  *core.Answerer
	blog      *core.BlogWriter
	sentiment *core.SentimentAnalyzer
	cloud     *wordcloud.Renderer
	counters  counters
}

// New creates a Service from explicit dependencies
func New(opts Options) (*Service, error) {
	if opts.Source == nil {
		return nil, errors.New("transcript source is required")
	}
	if opts.Generator == nil {
		return nil, errors.New("generator is required")
	}
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if opts.Store == nil {
		opts.Store = storage.NewMemoryStore()
	}
	if opts.Chunker == nil {
		opts.Chunker = core.NewChunker(core.DefaultChunkSize, core.DefaultChunkOverlap)
	}
	if opts.WordCloud == nil {
		r, err := wordcloud.New(wordcloud.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("word cloud renderer: %w", err)
		}
		opts.WordCloud = r
	}

	return &Service{
		source:    opts.Source,
		store:     opts.Store,
		answerer:  core.NewAnswerer(opts.Generator, opts.Embedder, opts.Chunker, opts.TopK),
		blog:      core.NewBlogWriter(opts.Generator, opts.Chunker),
		sentiment: core.NewSentimentAnalyzer(opts.Generator),
		cloud:     opts.WordCloud,
	}, nil
}

// NewFromConfig builds the providers and transcript source described by cfg
func NewFromConfig(cfg *config.Config) (*Service, error) {
	gen, err := llm.NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	emb, err := llm.NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	src, err := transcript.NewSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("transcript source: %w", err)
	}
	return New(Options{
		Source:    src,
		Generator: gen,
		Embedder:  emb,
		Chunker:   core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		TopK:      cfg.TopK,
	})
}

// Fetch returns the video's transcript without building its index
func (s *Service) Fetch(ctx context.Context, video string) (*models.Transcript, error) {
	sess, err := s.session(ctx, video)
	if err != nil {
		return nil, err
	}
	return sess.Transcript, nil
}

// Transcript returns the transcript text for a video and prepares its index
func (s *Service) Transcript(ctx context.Context, video string) (string, error) {
	sess, err := s.session(ctx, video)
	if err != nil {
		return "", err
	}
	if _, err := s.index(ctx, sess); err != nil {
		return "", s.fail("transcript", sess.VideoID, err)
	}
	return sess.Transcript.Text, nil
}

// Blog writes a blog post from the video's transcript
func (s *Service) Blog(ctx context.Context, video string, req BlogRequest) (string, error) {
	sess, err := s.session(ctx, video)
	if err != nil {
		return "", err
	}
	post, err := s.blog.Write(ctx, sess.Transcript.Text, req)
	if err != nil {
		return "", s.fail("blog", sess.VideoID, err)
	}
	s.counters.BlogPosts.Add(1)
	return post, nil
}

// Ask answers a question about the video using its index.
// An empty question is rejected before the transcript is fetched or indexed.
func (s *Service) Ask(ctx context.Context, video, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", s.fail("ask", video, models.NewError(models.KindQuestionAnswering, "answer question",
			models.NewError(models.KindInvalidArgument, "validate question", errors.New("question is empty"))))
	}
	sess, err := s.session(ctx, video)
	if err != nil {
		return "", err
	}
	ix, err := s.index(ctx, sess)
	if err != nil {
		return "", s.fail("ask", sess.VideoID, models.NewError(models.KindQuestionAnswering, "answer question", err))
	}
	answer, err := s.answerer.Answer(ctx, question, ix)
	if err != nil {
		return "", s.fail("ask", sess.VideoID, err)
	}
	s.counters.Questions.Add(1)
	return answer, nil
}

// Sentiment analyzes the overall sentiment of the video's transcript
func (s *Service) Sentiment(ctx context.Context, video string) (models.SentimentResult, error) {
	sess, err := s.session(ctx, video)
	if err != nil {
		return models.SentimentResult{}, err
	}
	result, err := s.sentiment.Analyze(ctx, sess.Transcript.Text)
	if err != nil {
		return models.SentimentResult{}, s.fail("sentiment", sess.VideoID, err)
	}
	s.counters.SentimentRuns.Add(1)
	return result, nil
}

// WordCloud renders the video's word cloud as a base64 PNG
func (s *Service) WordCloud(ctx context.Context, video string) (string, error) {
	sess, err := s.session(ctx, video)
	if err != nil {
		return "", err
	}
	img, err := s.cloud.RenderBase64(sess.Transcript.Text)
	if err != nil {
		return "", s.fail("word cloud", sess.VideoID, err)
	}
	s.counters.WordClouds.Add(1)
	return img, nil
}

// Evict drops the cached session for a video
func (s *Service) Evict(video string) (bool, error) {
	id, err := transcript.ExtractVideoID(video)
	if err != nil {
		return false, err
	}
	return s.store.Evict(id), nil
}

// session resolves a video ID or URL to its session, fetching the transcript on first use
func (s *Service) session(ctx context.Context, video string) (*storage.Session, error) {
	id, err := transcript.ExtractVideoID(video)
	if err != nil {
		return nil, err
	}
	sess, err := s.store.GetOrCreate(ctx, id, s.load)
	if err != nil {
		s.counters.FetchErrors.Add(1)
		log.Error().Err(err).Str("video_id", id).Str("op", "fetch transcript").Msg("Failed to load session")
		return nil, err
	}
	return sess, nil
}

func (s *Service) load(ctx context.Context, videoID string) (*models.Transcript, error) {
	start := time.Now()
	s.counters.TranscriptFetches.Add(1)

	entries, err := s.source.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	t := models.NewTranscript(videoID, entries)
	if t.Text == "" {
		return nil, models.NewError(models.KindTranscriptNotFound, "fetch transcript "+videoID, errors.New("transcript is empty"))
	}

	log.Info().
		Str("video_id", videoID).
		Int("entries", len(t.Entries)).
		Int("chars", len(t.Text)).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched transcript")
	return t, nil
}

func (s *Service) index(ctx context.Context, sess *storage.Session) (*storage.VectorIndex, error) {
	return sess.EnsureIndex(ctx, func(ctx context.Context, t *models.Transcript) (*storage.VectorIndex, error) {
		s.counters.IndexBuilds.Add(1)
		ix, err := s.answerer.BuildIndex(ctx, t)
		if err != nil {
			s.counters.IndexErrors.Add(1)
		}
		return ix, err
	})
}

func (s *Service) fail(op, videoID string, err error) error {
	s.counters.OperationErrors.Add(1)
	log.Error().Err(err).Str("video_id", videoID).Str("op", op).Msg("Operation failed")
	return err
}
