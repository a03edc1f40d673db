package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps uploaded post images.
const MaxImageSize = 10 * 1024 * 1024

var allowedImageExt = map[string]bool{
	".gif":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ErrUnsupportedImage is returned for oversized files or unknown extensions.
var ErrUnsupportedImage = errors.New("unsupported image")

// SavePostImage stores an uploaded image under mediaRoot/posts and returns its public path
// relative to the /media mount, e.g. "posts/3f0c....gif".
func SavePostImage(mediaRoot string, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedImage, ext)
	}
	if header.Size > MaxImageSize {
		return "", fmt.Errorf("%w: %d bytes", ErrUnsupportedImage, header.Size)
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(mediaRoot, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	dst, err := os.Create(full)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, io.LimitReader(src, MaxImageSize))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(full)
		return "", err
	}
	return "posts/" + name, nil
}

// RemovePostImage deletes an image saved by SavePostImage. Missing files are ignored.
func RemovePostImage(mediaRoot, rel string) error {
	if rel == "" {
		return nil
	}
	full := filepath.Join(mediaRoot, filepath.FromSlash(rel))
	// only files under mediaRoot/posts are ours to delete
	if filepath.Dir(full) != filepath.Join(mediaRoot, "posts") {
		return fmt.Errorf("%w: path %q", ErrUnsupportedImage, rel)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
