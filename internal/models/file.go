package models

import "io"

// File types tag the owner of an attachment.
const (
	FileTypeSubmission = "submission"
	FileTypeMaterial   = "material"
)

// AssignmentFile is an attachment owned by either a submission or an assignment's materials.
type AssignmentFile struct {
	ID          *int64 `json:"id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	FileType    string `json:"file_type"`
}

// UploadFile is a file received from the browser and forwarded to the Classroom API.
type UploadFile struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// Download is a streamed file. Callers close Body.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	FileName    string
	Size        int64
}
