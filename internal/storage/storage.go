// Package storage keeps uploaded game files on the local disk.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gamehub/backend/internal/apperror"
	"gamehub/backend/internal/logging"

	"github.com/google/uuid"
)

// DefaultMaxBytes is the per-file upload limit (10 MB).
const DefaultMaxBytes int64 = 10 << 20

// Upload is the public location of a stored thumbnail and game file.
type Upload struct {
	ID           string
	ThumbnailURL string
	FileURL      string
}

// Local stores each upload in its own directory under Root:
//
//	<Root>/<uuid>/thumbnail.<ext>
//	<Root>/<uuid>/game.<ext>
//
// and reports URLs under PublicPrefix (for example "/uploads").
type Local struct {
	Root         string
	PublicPrefix string
	MaxBytes     int64
}

func NewLocal(root, publicPrefix string, maxBytes int64) *Local {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Local{Root: root, PublicPrefix: publicPrefix, MaxBytes: maxBytes}
}

// SaveGame writes the thumbnail and game archive. Nothing is left on disk
// when it fails.
func (l *Local) SaveGame(thumbnail, gameFile *multipart.FileHeader) (*Upload, error) {
	if thumbnail == nil || gameFile == nil {
		return nil, apperror.ValidationFailed("", "Thumbnail and game file are required")
	}
	if thumbnail.Size > l.MaxBytes || gameFile.Size > l.MaxBytes {
		return nil, l.TooLarge()
	}

	id := uuid.NewString()
	dir := filepath.Join(l.Root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	thumbName := "thumbnail." + extension(thumbnail.Filename, "jpg")
	gameName := "game." + extension(gameFile.Filename, "zip")

	err := l.write(thumbnail, filepath.Join(dir, thumbName))
	if err == nil {
		err = l.write(gameFile, filepath.Join(dir, gameName))
	}
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logging.Warn().Err(rmErr).Str("dir", dir).Msg("Failed to clean up partial upload")
		}
		return nil, err
	}

	logging.Info().Str("upload_id", id).Msg("Stored game upload")
	return &Upload{
		ID:           id,
		ThumbnailURL: path.Join(l.PublicPrefix, id, thumbName),
		FileURL:      path.Join(l.PublicPrefix, id, gameName),
	}, nil
}

// Remove deletes a stored upload. Removing an unknown id is not an error.
func (l *Local) Remove(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid upload id %q", id)
	}
	return os.RemoveAll(filepath.Join(l.Root, id))
}

func (l *Local) write(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	// Size comes from the client; count the bytes actually copied as well.
	n, err := io.Copy(out, io.LimitReader(src, l.MaxBytes+1))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if n > l.MaxBytes {
		return l.TooLarge()
	}
	return nil
}

// MaxRequestBytes bounds a whole upload request: both files at the limit plus
// 1MB for the text fields and multipart framing.
func (l *Local) MaxRequestBytes() int64 {
	return 2*l.MaxBytes + 1<<20
}

// TooLarge is the validation error for a file over MaxBytes.
func (l *Local) TooLarge() error {
	return apperror.ValidationFailed("file", fmt.Sprintf("File size exceeds the limit (%dMB)", l.MaxBytes>>20))
}

// extension returns the part of name after its last dot, or def when there
// is none. Path separators are dropped so the result is a plain suffix.
func extension(name, def string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return def
	}
	ext := strings.ToLower(name[i+1:])
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return def
		}
	}
	return ext
}
