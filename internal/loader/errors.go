package loader

import (
	"errors"
	"fmt"
)

// Kind classifies a load failure. Each kind has its own diagnostic.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindUnreadable Kind = "unreadable"
	KindMalformed  Kind = "malformed"
	KindEmpty      Kind = "empty"
)

var (
	ErrNotFound   = errors.New("source not found")
	ErrUnreadable = errors.New("source unreadable")
	ErrMalformed  = errors.New("malformed document")
	ErrEmpty      = errors.New("document has no records")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindUnreadable:
		return ErrUnreadable
	case KindEmpty:
		return ErrEmpty
	default:
		return ErrMalformed
	}
}

// LoadError reports why a document could not be loaded. It matches the
// sentinel for its Kind with errors.Is.
type LoadError struct {
	Path     string
	Document Document
	Format   Format
	Kind     Kind
	Err      error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s %q: %s", e.Document, e.Path, e.Kind.sentinel())
	}
	return fmt.Sprintf("load %s %q: %s: %v", e.Document, e.Path, e.Kind.sentinel(), e.Err)
}

func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

// Diagnostic returns the one-line message shown to the user for this failure.
func (e *LoadError) Diagnostic() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("Error: The file '%s' was not found.", e.Path)
	case KindUnreadable:
		return fmt.Sprintf("Error: The file '%s' could not be read.", e.Path)
	case KindEmpty:
		return fmt.Sprintf("Error: The file '%s' contains no records.", e.Path)
	default:
		return fmt.Sprintf("Error: The file '%s' contains invalid %s.", e.Path, e.Format.Label())
	}
}
