package dto

// UploadResponse is returned by POST /upload on success.
type UploadResponse struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	Message  string `json:"message"`
}

// DeleteFileRequest is the payload for DELETE /upload. FilePath is the public
// path returned by a previous upload, e.g. "/uploads/students/12345-photo.jpg".
type DeleteFileRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}
