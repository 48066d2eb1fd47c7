package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// MaxUploadSize caps proof-of-transfer images at 5 MiB.
const MaxUploadSize = 5 << 20

var ErrTooLarge = errors.New("storage: file exceeds 5MB limit")

// ErrUnsupportedType rejects anything that does not sniff as an allowed image.
var ErrUnsupportedType = errors.New("storage: only JPEG, PNG, GIF and WebP images are allowed")

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes uploaded proof images to a local directory and serves them
// back under /uploads. File durability is independent of the database
// transaction; an orphaned file after a failed insert is only a cleanup
// concern.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save validates and persists one upload, returning the public URL path.
// The content type is sniffed from the payload, not trusted from the client.
func (s *Store) Save(src io.Reader, size int64) (string, error) {
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	head = head[:n]

	ext, ok := extByMime[http.DetectContentType(head)]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := dst.Write(head); err != nil {
		return "", err
	}
	// +1 so an understated Content-Length cannot smuggle an oversized body.
	written, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize-int64(n)+1))
	if err != nil {
		return "", err
	}
	if int64(n)+written > MaxUploadSize {
		_ = os.Remove(filepath.Join(s.dir, name))
		return "", ErrTooLarge
	}

	return "/uploads/" + name, nil
}
