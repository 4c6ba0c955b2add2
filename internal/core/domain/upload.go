package domain

import "io"

// MaxPhotoSize is the largest accepted avatar or post photo, in bytes.
const MaxPhotoSize = 1024 * 1000

// UploadKind tells the file storage where an upload belongs.
type UploadKind string

const (
	UploadAvatar    UploadKind = "avatar"
	UploadPostPhoto UploadKind = "posts"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}
