package issues_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
)

// fakeFile builds a payload of the given size carrying a real magic number,
// since detection is content based
func fakeFile(magic []byte, size int) []byte {
	data := make([]byte, size)
	copy(data, magic)
	return data
}

var (
	jpegMagic = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	gifMagic  = []byte("GIF89a")
)

func TestMediaValidatorAcceptsJPEGUnderLimit(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	img, err := v.Validate("photo.jpg", fakeFile(jpegMagic, 2<<20))
	assert.NoError(t, err)
	assert.Equal(t, "photo.jpg", img.Name)
	assert.Equal(t, "image/jpeg", img.MIME)
	assert.Equal(t, int64(2<<20), img.Size)
}

func TestMediaValidatorAcceptsPNG(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	img, err := v.Validate("photo.png", fakeFile(pngMagic, 1024))
	assert.NoError(t, err)
	assert.Equal(t, "image/png", img.MIME)
}

func TestMediaValidatorRejectsOversizedPNG(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	_, err := v.Validate("photo.png", fakeFile(pngMagic, 6<<20))
	assert.ErrorIs(t, err, models.ErrInvalidMedia)
}

func TestMediaValidatorRejectsGIF(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	_, err := v.Validate("anim.gif", fakeFile(gifMagic, 2<<20))
	assert.ErrorIs(t, err, models.ErrInvalidMedia)
}

func TestMediaValidatorRejectsRenamedTextFile(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	_, err := v.Validate("notes.jpg", []byte("definitely not an image"))
	assert.ErrorIs(t, err, models.ErrInvalidMedia)
}

func TestMediaValidatorRejectsEmptyFile(t *testing.T) {
	v := issues.NewMediaValidator(5 << 20)

	_, err := v.Validate("empty.jpg", nil)
	assert.ErrorIs(t, err, models.ErrInvalidMedia)
}
