package errors

import (
	stderrors "errors"
	"fmt"
)

// SearchError is an error carrying a stable code, a category and severity
// derived from that code, and optional hints for whoever reads it.
type SearchError struct {
	Code     string
	Message  string
	Category Category
	Severity Severity
	Cause    error

	// Details end up as detail_<key> log attributes and in JSON bodies.
	Details map[string]string
	// Suggestion is printed as a hint under CLI errors.
	Suggestion string
}

// New returns a SearchError for code. cause may be nil.
func New(code, message string, cause error) *SearchError {
	return &SearchError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

func (e *SearchError) Error() string { return fmt.Sprintf("[%s] %s", e.Code, e.Message) }

func (e *SearchError) Unwrap() error { return e.Cause }

// Is reports whether target is a SearchError with the same code.
func (e *SearchError) Is(target error) bool {
	t, ok := target.(*SearchError)
	return ok && e.Code == t.Code
}

func (e *SearchError) WithDetail(key, value string) *SearchError {
	if e.Details == nil {
		e.Details = map[string]string{}
	}
	e.Details[key] = value
	return e
}

func (e *SearchError) WithSuggestion(s string) *SearchError {
	e.Suggestion = s
	return e
}

// Shorthands for the codes callers build most often.

func ConfigError(message string, cause error) *SearchError {
	return New(ErrCodeConfigInvalid, message, cause)
}

func NetworkError(message string, cause error) *SearchError {
	return New(ErrCodeNetworkUnavailable, message, cause)
}

func ValidationError(message string, cause error) *SearchError {
	return New(ErrCodeInvalidInput, message, cause)
}

func InternalError(message string, cause error) *SearchError {
	return New(ErrCodeInternal, message, cause)
}

// IndexError is an IO error about the static index, with a hint pointing at
// the settings that locate it.
func IndexError(code, message string, cause error) *SearchError {
	return New(code, message, cause).
		WithSuggestion("check site.base_url and site.index_path, or regenerate the site")
}

// From finds the SearchError in err's chain. A plain error is reported as
// an internal error with err's text. From(nil) is nil.
func From(err error) *SearchError {
	if err == nil {
		return nil
	}
	var se *SearchError
	if stderrors.As(err, &se) {
		return se
	}
	return InternalError(err.Error(), err)
}

// GetCode returns the code of the SearchError in err's chain, or "".
func GetCode(err error) string {
	var se *SearchError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// GetCategory returns the category of the SearchError in err's chain, or "".
func GetCategory(err error) Category {
	var se *SearchError
	if stderrors.As(err, &se) {
		return se.Category
	}
	return ""
}

// IsFatal reports whether err carries a fatal code. Fatal errors stop the
// command; everything else degrades to a placeholder or a warning.
func IsFatal(err error) bool {
	var se *SearchError
	return stderrors.As(err, &se) && se.Severity == SeverityFatal
}
