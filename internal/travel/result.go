package travel

import (
	"encoding/json"
	"errors"
	"fmt"
)

var errNoResult = errors.New("no result")

// Result is the outcome of one domain operation: either a value or an error.
// Only Ok produces a successful Result; the zero value is not one.
type Result[T any] struct {
	Value T
	Err   error

	ok bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v, ok: true}
}

// Fail wraps an error. A nil error is replaced so the result stays failed.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result[T]{Err: err}
}

// IsOK reports whether the result carries a value.
func (r Result[T]) IsOK() bool {
	return r.ok && r.Err == nil
}

// Message returns the error text, or "" for a successful result.
func (r Result[T]) Message() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case !r.ok:
		return errNoResult.Error()
	}
	return ""
}

type resultJSON[T any] struct {
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// MarshalJSON encodes the result as {"data": ...} or {"error": "..."}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.IsOK() {
		return json.Marshal(resultJSON[T]{Error: r.Message()})
	}
	v := r.Value
	return json.Marshal(resultJSON[T]{Data: &v})
}

// UnmarshalJSON decodes the form produced by MarshalJSON. Decoded errors
// keep only their message. One of "data" or "error" must be present.
func (r *Result[T]) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if msg, ok := raw["error"]; ok {
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return fmt.Errorf("result error: %w", err)
		}
		*r = Fail[T](errors.New(s))
		return nil
	}

	data, ok := raw["data"]
	if !ok {
		return fmt.Errorf("result has neither data nor error")
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("result data: %w", err)
	}
	*r = Ok(v)
	return nil
}
