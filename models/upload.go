package models

// BlobUploadResult reports the outcome of a single blob-storage upload.
// HasError mirrors the original storage contract: callers branch on it (or
// Status) rather than on a Go error, because a failed upload of an optional
// attachment is a business outcome, not a transport fault.
type BlobUploadResult struct {
	Status           string `json:"status"`
	URL              string `json:"url"`
	OriginalFileName string `json:"originalFileName"`
	FileName         string `json:"fileName"`
	FileType         string `json:"fileType"`
	FileSize         int64  `json:"fileSize"`
	HasError         bool   `json:"hasError"`
}
