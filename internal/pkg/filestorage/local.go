package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/logger"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 10 << 20 // 10MB

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedFolders = map[string]bool{
	"students": true,
	"staff":    true,
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// LocalStorage stores uploaded documents on the local filesystem under a
// base directory, namespaced by folder.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL is
// prepended to returned public paths, e.g. "/uploads".
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFile validates the upload and writes it to <basePath>/<folder>/ under a
// timestamp-prefixed sanitized filename. Returns the public path.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", apperrors.NewBadRequestError("no file provided")
	}
	if !allowedFolders[folder] {
		return "", apperrors.ErrInvalidFolder
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.ErrInvalidFileType
	}
	if fileHeader.Size > MaxFileSize {
		return "", apperrors.ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dirPath := filepath.Join(ls.basePath, folder)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dirPath).Msg("Failed to create upload folder")
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(fileHeader.Filename))
	dstPath := filepath.Join(dirPath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	publicPath := ls.baseURL + "/" + folder + "/" + filename
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Str("path", publicPath).Msg("File saved")
	return publicPath, nil
}

// DeleteFile removes a stored file by its public path, e.g.
// "/uploads/students/1693526400000-photo.jpg". A missing file is treated as a
// successful delete.
func (ls *LocalStorage) DeleteFile(filePath string) error {
	rel := ls.relativePath(filePath)
	if rel == "" {
		return fmt.Errorf("invalid file path: %s", filePath)
	}

	physicalPath := filepath.Join(ls.basePath, rel)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// relativePath strips the public prefix and rejects traversal attempts,
// keeping the folder segment so namespaced files resolve correctly.
func (ls *LocalStorage) relativePath(filePath string) string {
	p := strings.TrimSpace(filePath)
	if p == "" {
		return ""
	}
	if ls.baseURL != "" {
		p = strings.TrimPrefix(p, ls.baseURL)
	}
	p = strings.TrimPrefix(p, "/")

	clean := filepath.Clean(p)
	if clean == "." || clean == "/" || strings.HasPrefix(clean, "..") {
		return ""
	}
	return clean
}

func sanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}
