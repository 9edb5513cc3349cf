package dto

// FileUploadResponse is returned after an object is stored.
type FileUploadResponse struct {
	Key         string `json:"key"`
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// FileDownloadResponse carries a short-lived presigned URL.
type FileDownloadResponse struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}
