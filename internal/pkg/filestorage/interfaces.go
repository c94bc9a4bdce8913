package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath stores an uploaded file under a subdirectory and
	// returns its accessible path
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file; deleting a missing file is not an
	// error
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a stored file URL
	GetFullPath(fileURL string) string
}
