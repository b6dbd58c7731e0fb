package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrRecognitionFailed   = errors.New("recognition engine failed")
	ErrUnknownEngine       = errors.New("unknown recognition engine")
	ErrInvalidExportFormat = errors.New("invalid export format")
)
