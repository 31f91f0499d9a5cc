package imagecodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"disaster-intake-api/pkg/id"
)

var (
	// ErrDecode: stored or submitted image text is not valid base64.
	ErrDecode = errors.New("image decode failed")
	// ErrStorage: writing image bytes to disk failed.
	ErrStorage = errors.New("image storage failed")
	// ErrUnavailable: a stored file-backed image no longer resolves.
	ErrUnavailable = errors.New("image unavailable")
)

// Encode converts raw image bytes to text safe for a DB text column.
func Encode(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode is the inverse of Encode. Malformed input → ErrDecode.
func Decode(text string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}

// Store is the at-rest representation of one submitted image: Put turns
// raw bytes into the string persisted in the report row, Get turns that
// string back into bytes.
type Store interface {
	// Put stores raw bytes for the index-th image of a submission and
	// returns the persisted representation.
	Put(raw []byte, index int) (string, error)
	// Get resolves a persisted representation back to raw bytes.
	// Returns ErrUnavailable when the backing content is gone.
	Get(stored string) ([]byte, error)
	// Remove undoes a successful Put. Used to clean up when the
	// enclosing report creation fails after images were stored.
	Remove(stored string)
}

// InlineStore keeps the encoded text itself in the report row.
type InlineStore struct{}

func (InlineStore) Put(raw []byte, _ int) (string, error) { return Encode(raw), nil }

func (InlineStore) Get(stored string) ([]byte, error) { return Decode(stored) }

func (InlineStore) Remove(string) {}

// FileStore writes image bytes under Dir and persists the file name.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return &FileStore{Dir: dir}, nil
}

// Put writes image_{unixnano}_{index}_{hex8}.<ext>. The random token
// keeps concurrent submissions from colliding at the same tick.
func (s *FileStore) Put(raw []byte, index int) (string, error) {
	name := fmt.Sprintf("image_%d_%d_%s%s", time.Now().UnixNano(), index, id.NewID8(), sniffExt(raw))
	if err := os.WriteFile(filepath.Join(s.Dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return name, nil
}

// Get reads the stored file back. A missing file is reported as
// ErrUnavailable so the caller can render a marker instead of failing
// the whole read.
func (s *FileStore) Get(stored string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, filepath.Base(stored)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return b, nil
}

func (s *FileStore) Remove(stored string) {
	_ = os.Remove(filepath.Join(s.Dir, filepath.Base(stored)))
}

var extByMime = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func sniffExt(raw []byte) string {
	if ext, ok := extByMime[http.DetectContentType(raw)]; ok {
		return ext
	}
	return ".bin"
}
