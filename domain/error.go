package domain

import (
	stderr "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrRecordNotFound keeps the repositories' "no such row" signal
// independent of the orm's own sentinel.
var ErrRecordNotFound = errors.New("record not found")

var (
	ErrNotFound = DetailedError{
		IDField:         "NOT_FOUND",
		StatusDescField: http.StatusText(http.StatusNotFound),
		ErrorField:      "The requested resource could not be found",
		StatusCodeField: http.StatusNotFound,
	}

	ErrUnauthorized = DetailedError{
		IDField:         "UNAUTHORIZED",
		StatusDescField: http.StatusText(http.StatusUnauthorized),
		ErrorField:      "The request could not be authorized",
		StatusCodeField: http.StatusUnauthorized,
	}

	ErrForbidden = DetailedError{
		IDField:         "FORBIDDEN",
		StatusDescField: http.StatusText(http.StatusForbidden),
		ErrorField:      "The requested action was forbidden",
		StatusCodeField: http.StatusForbidden,
	}

	ErrTooManyRequests = DetailedError{
		IDField:         "TOO_MANY_REQUESTS",
		StatusDescField: http.StatusText(http.StatusTooManyRequests),
		ErrorField:      "Too many requests, please try again later",
		StatusCodeField: http.StatusTooManyRequests,
	}

	ErrInternalServerError = DetailedError{
		IDField:         "INTERNAL_SERVER_ERROR",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "An internal server error occurred, please contact the system administrator",
		StatusCodeField: http.StatusInternalServerError,
	}

	// ErrInfrastructure marks persistence-layer failures so they are never
	// conflated with an authorization decision.
	ErrInfrastructure = DetailedError{
		IDField:         "INFRASTRUCTURE_FAILURE",
		StatusDescField: http.StatusText(http.StatusInternalServerError),
		ErrorField:      "A storage operation failed, please try again later",
		StatusCodeField: http.StatusInternalServerError,
	}

	ErrBadRequest = DetailedError{
		IDField:         "BAD_REQUEST",
		StatusDescField: http.StatusText(http.StatusBadRequest),
		ErrorField:      "The request was malformed or contained invalid parameters",
		StatusCodeField: http.StatusBadRequest,
	}

	ErrConflict = DetailedError{
		IDField:         "CONFLICT",
		StatusDescField: http.StatusText(http.StatusConflict),
		ErrorField:      "The resource could not be created due to a conflict",
		StatusCodeField: http.StatusConflict,
	}
)

// DetailedError is the one error type that crosses the usecase boundary.
// It carries the stable id handlers key on, the http status it maps to,
// and optional structured details for the response body.
type DetailedError struct {
	// IDField is the stable machine-readable identifier, e.g. NOT_FOUND.
	IDField string `json:"id,omitempty"`

	// StatusCodeField is the http status this error renders as.
	StatusCodeField int `json:"code,omitempty"`

	// StatusDescField is the http status text.
	StatusDescField string `json:"status,omitempty"`

	// ErrorField is the human-readable message.
	ErrorField string `json:"message"`

	// DetailsField holds extra structured context exposed to the client.
	DetailsField map[string]interface{} `json:"details,omitempty"`

	err error
}

// StackTrace surfaces the wrapped error's trace when one was captured
// with errors.WithStack.
func (e *DetailedError) StackTrace() (trace errors.StackTrace) {
	if e.err == e {
		return
	}

	if st := stackTracer(nil); stderr.As(e.err, &st) {
		trace = st.StackTrace()
	}

	return
}

func (e DetailedError) Error() string {
	return e.ErrorField
}

func (e DetailedError) Unwrap() error {
	return e.err
}

func (e *DetailedError) Wrap(err error) {
	e.err = err
}

// WithWrap returns a copy carrying err as its cause. errors.Is still
// matches the original sentinel because Is compares carrier fields.
func (e DetailedError) WithWrap(err error) *DetailedError {
	e.err = err
	return &e
}

// WithError returns a copy with a different message. The id and status
// stay, so handlers keep matching on IDField.
func (e DetailedError) WithError(message string) *DetailedError {
	e.ErrorField = message
	return &e
}

func (e DetailedError) WithDetail(key string, detail interface{}) *DetailedError {
	if e.DetailsField == nil {
		e.DetailsField = map[string]interface{}{}
	}
	e.DetailsField[key] = detail
	return &e
}

// Is matches on the carrier fields rather than object identity, so a
// WithWrap copy still equals its sentinel.
func (e DetailedError) Is(err error) bool {
	switch te := err.(type) {
	case DetailedError:
		return e.ErrorField == te.ErrorField &&
			e.StatusDescField == te.StatusDescField &&
			e.IDField == te.IDField &&
			e.StatusCodeField == te.StatusCodeField
	case *DetailedError:
		return e.ErrorField == te.ErrorField &&
			e.StatusDescField == te.StatusDescField &&
			e.IDField == te.IDField &&
			e.StatusCodeField == te.StatusCodeField
	default:
		return false
	}
}

func (e DetailedError) StatusCode() int {
	return e.StatusCodeField
}

func (e DetailedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "id=%s\n", e.IDField)
			_, _ = fmt.Fprintf(s, "error=%s\n", e.ErrorField)
			_, _ = fmt.Fprintf(s, "details=%+v\n", e.DetailsField)
			e.StackTrace().Format(s, verb)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.ErrorField)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.ErrorField)
	}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}
