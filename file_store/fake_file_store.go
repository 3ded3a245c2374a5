package file_store

import "mime/multipart"

// FakeFileStore records nothing and echoes the filename back as the key.
// Used in handler tests to keep the filesystem out of the picture.
type FakeFileStore struct{}

func (*FakeFileStore) Store(file *multipart.FileHeader) (string, error) {
	return file.Filename, nil
}

func (*FakeFileStore) GetUrlFromKey(key string) string {
	return AssetsUrlPrefix + key
}

func (*FakeFileStore) CleanUp() {}
