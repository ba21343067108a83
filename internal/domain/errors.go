package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is inactive")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrNoticeNotFound       = errors.New("notice not found")
	ErrVendorNotFound       = errors.New("vendor not found")
	ErrDuplicateNotice      = errors.New("a notice already exists for this document")
	ErrNotClassified        = errors.New("document has no classification awaiting approval")
	ErrInvalidClassification = errors.New("invalid classification label")
	ErrProcessingInProgress = errors.New("document is already being processed")
	ErrAlreadyProcessed     = errors.New("document processing is already complete")
	ErrProviderUnavailable  = errors.New("upstream provider unavailable")
)
