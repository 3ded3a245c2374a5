package file_store

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/pkg/errors"
)

const AssetsUrlPrefix = "/assets/"

// LocalFileStore writes uploads to a public directory on local disk, keyed
// by the upload's original filename. Uploads with the same filename
// overwrite each other, matching the original storage contract.
type LocalFileStore struct {
	rootDir string
}

func NewLocalFileStore(rootDir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, errors.Wrap(err, "file_store: fail to create assets dir")
	}
	return &LocalFileStore{rootDir: rootDir}, nil
}

func (s *LocalFileStore) Store(file *multipart.FileHeader) (string, error) {
	// Strip any directory components a hostile client put in the filename.
	key := filepath.Base(file.Filename)
	if key == "." || key == string(filepath.Separator) {
		return "", errors.New("file_store: invalid upload filename")
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "file_store: fail to open upload")
	}
	defer src.Close()

	fullPath := filepath.Join(s.rootDir, key)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "file_store: fail to create file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "file_store: fail to write file")
	}

	Logger.Log.WithField("key", key).Info("stored uploaded file")
	return key, nil
}

func (s *LocalFileStore) GetUrlFromKey(key string) string {
	return AssetsUrlPrefix + key
}

func (s *LocalFileStore) RootDir() string {
	return s.rootDir
}

func (s *LocalFileStore) CleanUp() {}
