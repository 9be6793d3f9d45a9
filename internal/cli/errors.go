package cli

// Error codes for structured error responses. These are stable and can be
// relied upon by scripts.
const (
	// Library errors
	ErrLibraryNotFound     = "LIBRARY_NOT_FOUND"
	ErrLibraryNotSpecified = "LIBRARY_NOT_SPECIFIED"
	ErrLibraryLoadFailed   = "LIBRARY_LOAD_FAILED"
	ErrConfigInvalid       = "CONFIG_INVALID"

	// Object errors
	ErrObjectNotFound  = "OBJECT_NOT_FOUND"
	ErrObjectMalformed = "OBJECT_MALFORMED"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Sync errors
	ErrSourceInvalid  = "SOURCE_INVALID"
	ErrAuditLogFailed = "AUDIT_LOG_FAILED"

	// Index errors
	ErrIndexError = "INDEX_ERROR"

	// General errors
	ErrInvalidInput = "INVALID_INPUT"
	ErrInternal     = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnParseFailure  = "PARSE_FAILURE"
	WarnDuplicateID   = "DUPLICATE_ID"
	WarnUnresolvedRef = "UNRESOLVED_REFERENCE"
	WarnRecordSkipped = "RECORD_SKIPPED"
	WarnIndexOutdated = "INDEX_OUTDATED"
)
