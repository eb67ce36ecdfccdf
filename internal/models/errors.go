// ABOUTME: Error taxonomy shared by every tubewise component
// ABOUTME: Errors carry a Kind so callers can match with errors.Is across wrapping layers
package models

import "errors"

// Kind classifies a failure
type Kind string

const (
	KindTranscriptNotFound Kind = "transcript_not_found"
	KindIndexBuild         Kind = "index_build"
	KindEmbedding          Kind = "embedding"
	KindGeneration         Kind = "generation"
	KindQuestionAnswering  Kind = "question_answering"
	KindInvalidArgument    Kind = "invalid_argument"
)

// Sentinels for errors.Is; they match any *Error of the same Kind
var (
	ErrTranscriptNotFound = &Error{Kind: KindTranscriptNotFound}
	ErrIndexBuild         = &Error{Kind: KindIndexBuild}
	ErrEmbedding          = &Error{Kind: KindEmbedding}
	ErrGeneration         = &Error{Kind: KindGeneration}
	ErrQuestionAnswering  = &Error{Kind: KindQuestionAnswering}
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument}
)

// Error is a classified failure with the operation that produced it
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and operation name
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind only
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the outermost Kind in err's chain, or empty if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

