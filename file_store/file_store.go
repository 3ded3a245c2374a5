package file_store

import "mime/multipart"

// UploadedFileStore persists request attachments and hands back the key
// recorded on the owning entity. The key, not the binary content, is what
// user and post records carry.
type UploadedFileStore interface {
	Store(file *multipart.FileHeader) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}
