// Package blobstore keeps uploaded team logos and player photos in an
// embedded Pebble database and serves them back over HTTP.
package blobstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/mcdev12/bpl/go/internal/apperr"
)

const keyPrefix = "blob/"

// Blob is a stored file
type Blob struct {
	Key         string
	ContentType string
	Data        []byte
}

// Store is a Pebble-backed blob store
type Store struct {
	db *pebble.DB
}

// Open opens (or creates) the store in dir.
func Open(dir string) (*Store, error) {
	return open(dir, &pebble.Options{})
}

// OpenInMemory opens a store that lives only in memory.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(dir string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewKey derives a storage key from an uploaded file name: the slugified
// base name, a random suffix and the lower-cased extension.
func NewKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	base := slug.Make(strings.TrimSuffix(path.Base(filename), path.Ext(filename)))
	if base == "" {
		base = "file"
	}
	if ext = slug.Make(strings.TrimPrefix(ext, ".")); ext != "" {
		ext = "." + ext
	}
	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + ext
}

// Put stores data under key.
func (s *Store) Put(key, contentType string, data []byte) error {
	if err := s.db.Set([]byte(keyPrefix+key), encodeBlob(contentType, data), pebble.Sync); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}
	return nil
}

// Get returns the blob stored under key.
func (s *Store) Get(key string) (*Blob, error) {
	value, closer, err := s.db.Get([]byte(keyPrefix + key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, apperr.NotFound("blob %s not found", key)
		}
		return nil, fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	defer closer.Close()

	contentType, data, err := decodeBlob(value)
	if err != nil {
		return nil, fmt.Errorf("blob %s: %w", key, err)
	}
	return &Blob{Key: key, ContentType: contentType, Data: data}, nil
}

// Delete removes the blob stored under key.
func (s *Store) Delete(key string) error {
	return s.db.Delete([]byte(keyPrefix+key), pebble.Sync)
}

// binary encoding: [contentTypeLen:2][contentType][data]
func encodeBlob(contentType string, data []byte) []byte {
	buf := make([]byte, 2+len(contentType)+len(data))
	binary.BigEndian.PutUint16(buf[:2], uint16(len(contentType)))
	copy(buf[2:], contentType)
	copy(buf[2+len(contentType):], data)
	return buf
}

// decodeBlob copies out of value, which pebble only lends until the closer
// is closed.
func decodeBlob(value []byte) (string, []byte, error) {
	if len(value) < 2 {
		return "", nil, errors.New("invalid blob record length")
	}
	n := int(binary.BigEndian.Uint16(value[:2]))
	if len(value) < 2+n {
		return "", nil, errors.New("invalid blob record length")
	}
	data := make([]byte, len(value)-2-n)
	copy(data, value[2+n:])
	return string(value[2 : 2+n]), data, nil
}
