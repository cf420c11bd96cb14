package upstream

import "fmt"

// ErrorKind buckets core-API failures so callers can pick the right surface:
// unauthenticated clears the session, validation maps onto form fields,
// transport and server failures become banner-grade messages.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindValidation      ErrorKind = "validation"
	KindRejected        ErrorKind = "rejected"
	KindServer          ErrorKind = "server"
	KindTransport       ErrorKind = "transport"
)

type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	// Fields holds the first message per field for validation failures.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream %s error (status %d)", e.Kind, e.StatusCode)
}

func IsKind(err error, kind ErrorKind) bool {
	ue, ok := AsError(err)
	return ok && ue.Kind == kind
}

func AsError(err error) (*Error, bool) {
	for err != nil {
		if ue, ok := err.(*Error); ok {
			return ue, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

func ErrUnauthenticated(message string) *Error {
	if message == "" {
		message = "sesi tidak valid, silakan login kembali"
	}
	return &Error{Kind: KindUnauthenticated, StatusCode: 401, Message: message}
}
