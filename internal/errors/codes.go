// Package errors provides structured error handling for promptdex.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (root directory, files)
//   - 4XX: Validation and lookup errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and directory I/O errors.
	CategoryIO Category = "IO"
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
	// SeverityError indicates the request failed.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
	// SeverityInfo indicates an expected outcome rather than a failure.
	SeverityInfo Severity = "INFO"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound   = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigPermission = "ERR_103_CONFIG_PERMISSION"

	// IO errors (200-299)
	ErrCodeRootNotFound   = "ERR_201_ROOT_NOT_FOUND"
	ErrCodeRootNotDir     = "ERR_202_ROOT_NOT_DIRECTORY"
	ErrCodeFilePermission = "ERR_203_FILE_PERMISSION"
	ErrCodeFileUnreadable = "ERR_204_FILE_UNREADABLE"
	ErrCodeDirUnreadable  = "ERR_205_DIRECTORY_UNREADABLE"
	ErrCodeFileTooLarge   = "ERR_206_FILE_TOO_LARGE"

	// Validation errors (400-499)
	ErrCodeInvalidInput      = "ERR_401_INVALID_INPUT"
	ErrCodeDocumentNotFound  = "ERR_404_DOCUMENT_NOT_FOUND"
	ErrCodeInvalidMetadata   = "ERR_405_INVALID_METADATA"
	ErrCodeDuplicateDocument = "ERR_409_DUPLICATE_DOCUMENT_ID"

	// Internal errors (500-599)
	ErrCodeInternal    = "ERR_501_INTERNAL"
	ErrCodeServeFailed = "ERR_503_SERVE_FAILED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "101" from "ERR_101_CONFIG_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeRootNotFound, ErrCodeRootNotDir:
		return SeverityFatal
	case ErrCodeFilePermission, ErrCodeFileUnreadable, ErrCodeDirUnreadable,
		ErrCodeFileTooLarge, ErrCodeInvalidMetadata, ErrCodeDuplicateDocument:
		return SeverityWarning
	case ErrCodeDocumentNotFound:
		return SeverityInfo
	default:
		return SeverityError
	}
}
