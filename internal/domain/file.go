package domain

import "time"

// UploadedFile captures the metadata recorded for an uploaded binary. The
// content itself lives in the blob store under Filename.
type UploadedFile struct {
	ID          string
	Filename    string
	URL         string
	Size        int64
	MimeType    string
	Description *string
	UploadedAt  time.Time
}
