// ABOUTME: Tests for the YouTube caption source against a fake youtube.com
// ABOUTME: Covers watch page scraping, player fallback, track selection, and not-found mapping
package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/tubewise/internal/models"
	"github.com/harper/tubewise/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const captionXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0" dur="1.5">hello from the fake</text>` +
	`<text start="1.5" dur="2">caption &amp;amp; track</text></transcript>`

type fakeYouTube struct {
	server      *httptest.Server
	watchBody   func(base string) string
	playerBody  func(base string) string
	playerCalls atomic.Int32
}

func newFakeYouTube(t *testing.T) *fakeYouTube {
	f := &fakeYouTube{}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if f.watchBody == nil {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(f.watchBody(f.server.URL)))
	})
	mux.HandleFunc("/player", func(w http.ResponseWriter, r *http.Request) {
		f.playerCalls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		var req innertubeReq
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ANDROID", req.Context.Client.ClientName)
		if f.playerBody == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(f.playerBody(f.server.URL)))
	})
	mux.HandleFunc("/captions/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, captionXML)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeYouTube) source() *YouTubeSource {
	src := NewYouTubeSource(f.server.Client(), []string{"en"}, util.RetryPolicy{MaxRetries: 1, AttemptTimeout: 5 * time.Second})
	src.watchURL = f.server.URL + "/watch?v="
	src.playerURL = f.server.URL + "/player"
	return src
}

func playerJSON(base string) string {
	return `{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
		`{"baseUrl":"` + base + `/captions/de","languageCode":"de"},` +
		`{"baseUrl":"` + base + `/captions/en?x=1","languageCode":"en","kind":"asr"}` +
		`]}}}`
}

func TestYouTubeSource_WatchPage(t *testing.T) {
	fake := newFakeYouTube(t)
	fake.watchBody = func(base string) string {
		return `<html><script>var ytInitialPlayerResponse = ` + playerJSON(base) + `;var other = {"a": "}"};</script></html>`
	}

	entries, err := fake.source().Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hello from the fake", entries[0].Text)
	assert.Equal(t, "caption & track", entries[1].Text)
	assert.EqualValues(t, 0, fake.playerCalls.Load())
}

func TestYouTubeSource_FallsBackToPlayer(t *testing.T) {
	fake := newFakeYouTube(t)
	fake.watchBody = func(string) string { return "<html>consent wall</html>" }
	fake.playerBody = playerJSON

	entries, err := fake.source().Fetch(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.EqualValues(t, 1, fake.playerCalls.Load())
}

func TestYouTubeSource_NoCaptions(t *testing.T) {
	fake := newFakeYouTube(t)
	fake.watchBody = func(string) string {
		return `ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"}};`
	}
	fake.playerBody = func(string) string {
		return `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm"}}`
	}

	_, err := fake.source().Fetch(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrTranscriptNotFound))
	assert.Contains(t, err.Error(), "Sign in to confirm")
}

func TestPickBestTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1&exp=xpe", LanguageCode: "en"},
		{BaseURL: "u2", LanguageCode: "fr", Kind: "asr"},
		{BaseURL: "u3", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u4", LanguageCode: "fr"},
	}

	tests := []struct {
		name  string
		langs []string
		want  string
	}{
		{"manual preferred language", []string{"fr"}, "u4"},
		{"auto generated when no manual", []string{"en"}, "u3"},
		{"english fallback", []string{"ja"}, "u3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tracks, tt.langs)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.BaseURL)
		})
	}

	_, ok := pickBestTrack([]captionTrack{{BaseURL: "x&exp=xpe"}}, []string{"en"})
	assert.False(t, ok)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":"b}\"c","d":{"e":1}}`, string(extractJSON([]byte(`{"a":"b}\"c","d":{"e":1}};rest`))))
	assert.Nil(t, extractJSON([]byte(`no json`)))
	assert.Nil(t, extractJSON([]byte(`{"open":`)))
}
