package composite

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"
)

// Errors returned by Composite and Texture. Returned errors wrap one of
// these; use errors.Is to test for them.
var (
	// ErrNilImage is returned when a required image is nil.
	ErrNilImage = errors.New("composite: nil image")

	// ErrInvalidOperator is returned for an operator outside the
	// enumeration.
	ErrInvalidOperator = errors.New("composite: invalid operator")

	// ErrInvalidVirtualPixelMethod is returned by ParseVirtualPixelMethod
	// for an unknown name.
	ErrInvalidVirtualPixelMethod = errors.New("composite: invalid virtual pixel method")

	// ErrAllocation is returned when an intermediate image cannot be
	// allocated. The destination is left untouched.
	ErrAllocation = errors.New("composite: cannot allocate intermediate image")

	// ErrPixelIO is returned when reading or writing pixels failed for
	// at least one row. Other rows are still composited.
	ErrPixelIO = errors.New("composite: pixel cache I/O failed")

	// ErrCanceled is returned when the progress monitor or the context
	// stopped the operation before every row was visited.
	ErrCanceled = errors.New("composite: operation canceled")
)

// Severity classifies an Exception.
type Severity uint8

const (
	// Warning marks a recovered problem, such as unparsable operator
	// arguments replaced by defaults.
	Warning Severity = iota

	// Error marks a failed operation.
	Error
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Exception is one entry of an image's exception log.
type Exception struct {
	Severity Severity
	Err      error
}

// Error implements the error interface.
func (e Exception) Error() string {
	return e.Severity.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e Exception) Unwrap() error {
	return e.Err
}

// exceptionLog collects diagnostics for an image.
type exceptionLog struct {
	mu      sync.Mutex
	entries []Exception
}

func (l *exceptionLog) push(sev Severity, err error) {
	l.mu.Lock()
	l.entries = append(l.entries, Exception{Severity: sev, Err: err})
	l.mu.Unlock()
}

func (l *exceptionLog) list() []Exception {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

func (l *exceptionLog) clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
