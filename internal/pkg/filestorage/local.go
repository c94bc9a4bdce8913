package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/apperrors"
	"github.com/omnalage/skill-exchange-platform/internal/pkg/logger"
)

// allowedImageExtensions lists the upload types accepted for avatars
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// maxUploadSize caps uploads at 5 MiB
const maxUploadSize = 5 << 20

// LocalStorage stores uploaded files on the local filesystem
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. If baseURL is
// set it is prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFileWithPath stores an uploaded image under basePath/subPath with a
// generated filename and returns the accessible path.
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewValidationError("No file uploaded")
	}
	if fileHeader.Size > maxUploadSize {
		return "", apperrors.NewValidationError("File exceeds the 5 MiB upload limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return "", apperrors.NewValidationError("Unsupported image type " + ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	targetDir := ls.basePath
	if subPath != "" {
		targetDir = filepath.Join(ls.basePath, subPath)
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(targetDir, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relativePath := uniqueFilename
	if subPath != "" {
		relativePath = subPath + "/" + uniqueFilename
	}

	accessiblePath := "uploads/" + relativePath
	if ls.baseURL != "" {
		accessiblePath = strings.TrimRight(ls.baseURL, "/") + "/" + relativePath
	}

	logger.Debug().
		Str("filename", fileHeader.Filename).
		Str("savedAs", uniqueFilename).
		Msg("File saved")

	return accessiblePath, nil
}

// DeleteFile removes a stored file given its accessible path. Missing files
// are treated as already deleted.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	physicalPath := ls.GetFullPath(filePath)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFullPath maps an accessible path back to its location under basePath
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	relative := fileURL
	if ls.baseURL != "" {
		relative = strings.TrimPrefix(relative, strings.TrimRight(ls.baseURL, "/")+"/")
	}
	relative = strings.TrimPrefix(relative, "uploads/")

	relative = filepath.Clean(relative)
	if relative == "" || relative == "." || strings.HasPrefix(relative, "..") || filepath.IsAbs(relative) {
		return ""
	}

	return filepath.Join(ls.basePath, relative)
}
