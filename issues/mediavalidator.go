package issues

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/streetsight/streetsight/models"
)

// allowedMIMEs are the upload types the reports API accepts. Detection is
// content-based; the file extension is not trusted.
var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// MediaValidator enforces format and size constraints on an uploaded image
// before any location or network work begins
type MediaValidator struct {
	MaxBytes int64
}

// NewMediaValidator returns a validator with the configured size ceiling
func NewMediaValidator(maxBytes int64) *MediaValidator {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &MediaValidator{MaxBytes: maxBytes}
}

// ValidatedImage is an accepted upload, readable both for preview rendering
// and for the multipart submit
type ValidatedImage struct {
	Name string
	MIME string
	Size int64

	data []byte
}

// Reader returns a fresh reader over the image bytes
func (v *ValidatedImage) Reader() io.Reader {
	return bytes.NewReader(v.data)
}

// Preview decodes the image and fits it inside maxEdge for UI display
func (v *ValidatedImage) Preview(maxEdge int) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(v.data))
	if err != nil {
		return nil, fmt.Errorf("decode preview: %w", err)
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos), nil
}

// Validate checks the upload synchronously and fails fast. A rejected image
// never triggers a location prompt or a submission.
func (m *MediaValidator) Validate(name string, data []byte) (*ValidatedImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", models.ErrInvalidMedia)
	}
	if int64(len(data)) > m.MaxBytes {
		return nil, fmt.Errorf("%w: %v bytes exceeds the %v byte limit", models.ErrInvalidMedia, len(data), m.MaxBytes)
	}
	mime := mimetype.Detect(data).String()
	if !allowedMIMEs[mime] {
		return nil, fmt.Errorf("%w: %v is not an accepted type (jpeg, jpg, png)", models.ErrInvalidMedia, mime)
	}
	return &ValidatedImage{
		Name: name,
		MIME: mime,
		Size: int64(len(data)),
		data: data,
	}, nil
}
