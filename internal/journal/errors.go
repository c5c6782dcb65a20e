package journal

import "codeberg.org/mutker/ipmictl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("journal_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("journal_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("journal_schema_validation_failed")
	ErrSchemaMigrationFailed  = errors.ErrorCode("journal_schema_migration_failed")

	// Storage Errors
	ErrStorageAccess = errors.ErrorCode("journal_storage_access_failed")
	ErrStorageInit   = errors.ErrInitJournal
	ErrStorageClose  = errors.ErrCloseJournal

	// Entry Errors
	ErrInvalidEntry = errors.ErrorCode("journal_invalid_entry")
	ErrRecordFailed = errors.ErrRecordJournal

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
