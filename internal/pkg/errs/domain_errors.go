package errs

import "errors"

// Error kinds shared by the usecase and handler layers. Handlers map each kind
// to one HTTP status.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyKeyReused   = Conflict("idempotency key was used with a different request")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// kindError carries a caller-facing message and reports itself as its kind
// to errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

func Validation(msg string) error { return &kindError{kind: ErrValidation, msg: msg} }
func NotFound(msg string) error   { return &kindError{kind: ErrNotFound, msg: msg} }
func Conflict(msg string) error   { return &kindError{kind: ErrConflict, msg: msg} }
func Forbidden(msg string) error  { return &kindError{kind: ErrForbidden, msg: msg} }

// AsKind classifies cause under kind and keeps cause's message as the public
// one. The cause stays reachable through errors.Unwrap.
func AsKind(cause, kind error) error {
	if cause == nil {
		return nil
	}
	return &kindCause{kindError: kindError{kind: kind, msg: cause.Error()}, cause: cause}
}

type kindCause struct {
	kindError
	cause error
}

func (e *kindCause) Unwrap() error { return e.cause }

// Message returns the public message of the outermost kind error in err's
// chain, or fallback when there is none.
func Message(err error, fallback string) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch k := e.(type) {
		case *kindError:
			return k.msg
		case *kindCause:
			return k.msg
		}
	}
	return fallback
}
