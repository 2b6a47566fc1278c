package model

// Result carries a soft-failure envelope: either data or a server message.
// A failed Result with an empty message means the server gave no reason.
type Result[T any] struct {
	data T
	msg  string
	ok   bool
}

// Ok wraps a successful payload.
func Ok[T any](v T) Result[T] {
	return Result[T]{data: v, ok: true}
}

// Fail wraps a business failure reported by the server.
func Fail[T any](msg string) Result[T] {
	return Result[T]{msg: msg}
}

func (r Result[T]) OK() bool { return r.ok }

// Value returns the payload; it is the zero value for failed results.
func (r Result[T]) Value() T { return r.data }

// Message returns the server-provided failure message.
func (r Result[T]) Message() string { return r.msg }

// MessageOr returns the server message, or fallback when the server gave none.
func (r Result[T]) MessageOr(fallback string) string {
	if r.msg != "" {
		return r.msg
	}
	return fallback
}
