// Package errors provides structured error handling for postsearch.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (index file, disk)
//   - 3XX: Network errors (index fetch, remote search)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
//
// Nothing in postsearch retries; the category only drives presentation.
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryNetwork indicates network-related errors.
	CategoryNetwork Category = "NETWORK"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeIndexNotFound  = "ERR_201_INDEX_NOT_FOUND"
	ErrCodeIndexRead      = "ERR_202_INDEX_READ"
	ErrCodeIndexMalformed = "ERR_203_INDEX_MALFORMED"
	ErrCodeLogNotFound    = "ERR_204_LOG_NOT_FOUND"

	// Network errors (300-399)
	ErrCodeNetworkUnavailable = "ERR_301_NETWORK_UNAVAILABLE"
	ErrCodeBadStatus          = "ERR_302_BAD_STATUS"
	ErrCodeBadResponse        = "ERR_303_BAD_RESPONSE"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidMode  = "ERR_402_INVALID_MODE"
	ErrCodeNoTerminal   = "ERR_403_NO_TERMINAL"

	// Internal errors (500-599)
	ErrCodeInternal     = "ERR_501_INTERNAL"
	ErrCodeSearchFailed = "ERR_502_SEARCH_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract numeric portion (e.g., "101" from "ERR_101_CONFIG_NOT_FOUND")
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryNetwork
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryConfig:
		return SeverityFatal
	case CategoryIO, CategoryNetwork:
		// The session keeps working with an empty index or an error row.
		return SeverityWarning
	default:
		return SeverityError
	}
}
