// ABOUTME: Deterministic in-process Embedder and Generator for tests and offline runs
// ABOUTME: The embedder hashes words into buckets so texts sharing words land close together
package llmtest

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"unicode"
)

// Dimensions is the vector size produced by Embedder
const Dimensions = 64

// Embedder is a bag-of-words hashing embedder
type Embedder struct {
	// Err, when set, is returned by every call
	Err error

	mu    sync.Mutex
	calls int
}

// Embed maps text to a deterministic vector. The first dimension is a constant bias so no vector is zero.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.calls++
	err := e.Err
	e.mu.Unlock()
	if err != nil {
		return nil, err
	}

	vec := make([]float32, Dimensions)
	vec[0] = 0.1
	for _, word := range Words(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[1+int(h.Sum32()%uint32(Dimensions-1))]++
	}
	return vec, nil
}

// Calls returns how many times Embed was invoked
func (e *Embedder) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// Words lowercases text and splits it on anything that is not a letter or digit
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Call is one recorded Generator invocation
type Call struct {
	System string
	User   string
}

// Generator returns a canned response and records every prompt
type Generator struct {
	// Response is returned when Respond is nil
	Response string
	// Respond, when set, computes the response from the prompts
	Respond func(system, user string) (string, error)
	// Err, when set, is returned by every call
	Err error

	mu    sync.Mutex
	calls []Call
}

// Complete records the prompts and returns the configured response
func (g *Generator) Complete(_ context.Context, system, user string) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, Call{System: system, User: user})
	g.mu.Unlock()

	if g.Err != nil {
		return "", g.Err
	}
	if g.Respond != nil {
		return g.Respond(system, user)
	}
	return g.Response, nil
}

// Calls returns a copy of the recorded prompts
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}
