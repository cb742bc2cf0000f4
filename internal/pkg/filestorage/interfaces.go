package filestorage

import "mime/multipart"

// FileStorage defines the interface for document storage operations.
type FileStorage interface {
	// SaveFile validates the upload and stores it under the given folder,
	// returning the public path clients use to reach it.
	SaveFile(fileHeader *multipart.FileHeader, folder string) (string, error)

	// DeleteFile removes a previously stored file by its public path.
	// A file that is already gone is not an error.
	DeleteFile(filePath string) error
}
