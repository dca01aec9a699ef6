package agent

import "fmt"

// ErrMissingVariable indicates a task prompt template referenced a
// placeholder that was not bound. This is a programmer error: it is
// fatal and never retried.
type ErrMissingVariable struct {
	Name string
}

func (e *ErrMissingVariable) Error() string {
	return fmt.Sprintf("template variable %q is not bound", e.Name)
}

// ErrMalformedOutput indicates the model's text could not be coerced to
// JSON after fence-stripping, brace-scanning, and repair. The raw text
// is retained for diagnostics and is never replaced with a default.
type ErrMalformedOutput struct {
	Raw string
	Err error
}

func (e *ErrMalformedOutput) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *ErrMalformedOutput) Unwrap() error { return e.Err }
