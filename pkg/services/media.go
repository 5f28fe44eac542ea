package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrFileTooLarge = errors.New("uploaded file is too large")
)

const DefaultImageMIME = "image/png"

type MediaFile struct {
	Name string `json:"name"`
	MIME string `json:"mime"`
	Size int64  `json:"size"`
	URL  string `json:"url"` // embeddable data reference
}

// EncodeImageReference builds a data: URL for raw image bytes.
func EncodeImageReference(mime string, data []byte) string {
	if mime == "" {
		mime = DefaultImageMIME
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// ReadCoverUpload turns an uploaded image into an embeddable cover reference.
// Nothing is written to disk.
func ReadCoverUpload(header *multipart.FileHeader, maxBytes int64) (*MediaFile, error) {
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return ReadCover(src, header.Filename, maxBytes)
}

func ReadCover(src io.Reader, filename string, maxBytes int64) (*MediaFile, error) {
	reader := src
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotAnImage, mtype.String())
	}

	name := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return &MediaFile{
		Name: name,
		MIME: mtype.String(),
		Size: int64(len(data)),
		URL:  EncodeImageReference(mtype.String(), data),
	}, nil
}
