// ABOUTME: Per-video session state: the fetched transcript and its lazily built index
// ABOUTME: MemoryStore guarantees at most one construction per video and one index build per session
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/tubewise/internal/models"
	"golang.org/x/sync/singleflight"
)

// Session holds everything derived from one video's transcript
type Session struct {
	ID         string
	VideoID    string
	Transcript *models.Transcript
	CreatedAt  time.Time

	mu    sync.Mutex // Serializes index construction
	index *VectorIndex
}

// NewSession creates a session for a fetched transcript
func NewSession(t *models.Transcript) *Session {
	return &Session{
		ID:         uuid.NewString(),
		VideoID:    t.VideoID,
		Transcript: t,
		CreatedAt:  time.Now(),
	}
}

// Index returns the built index or nil
func (s *Session) Index() *VectorIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// EnsureIndex returns the session's index, calling build if none exists yet.
// Concurrent callers wait for a single build. A failed build is not cached.
func (s *Session) EnsureIndex(ctx context.Context, build func(ctx context.Context, t *models.Transcript) (*VectorIndex, error)) (*VectorIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}

	ix, err := build(ctx, s.Transcript)
	if err != nil {
		return nil, err
	}
	if ix.VideoID() != s.VideoID {
		return nil, models.NewError(models.KindIndexBuild, "ensure index", errors.New("index built from another video's transcript"))
	}
	s.index = ix
	return ix, nil
}

// Loader fetches the transcript for a video
type Loader func(ctx context.Context, videoID string) (*models.Transcript, error)

// SessionStore maps video IDs to sessions
type SessionStore interface {
	// GetOrCreate returns the session for videoID, calling load at most once across concurrent callers
	GetOrCreate(ctx context.Context, videoID string, load Loader) (*Session, error)
	Get(videoID string) (*Session, bool)
	Evict(videoID string) bool
	Len() int
}

// MemoryStore is a process-local SessionStore
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	group    singleflight.Group
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the existing session or loads a new one. Load failures are not cached.
func (m *MemoryStore) GetOrCreate(ctx context.Context, videoID string, load Loader) (*Session, error) {
	if s, ok := m.Get(videoID); ok {
		return s, nil
	}

	v, err, _ := m.group.Do(videoID, func() (any, error) {
		if s, ok := m.Get(videoID); ok {
			return s, nil
		}

		t, err := load(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if t.VideoID != videoID {
			return nil, errors.New("loader returned a transcript for a different video")
		}

		s := NewSession(t)
		m.mu.Lock()
		m.sessions[videoID] = s
		m.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Get returns the session for videoID if present
func (m *MemoryStore) Get(videoID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[videoID]
	return s, ok
}

// Evict removes the session for videoID and reports whether one existed
func (m *MemoryStore) Evict(videoID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[videoID]
	delete(m.sessions, videoID)
	return ok
}

// Len returns the number of sessions
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
