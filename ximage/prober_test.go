package ximage_test

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/fwojciec/pincrawl"
	"github.com/fwojciec/pincrawl/ximage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestProber_Dimensions_png(t *testing.T) {
	t.Parallel()

	w, h, err := ximage.Prober{}.Dimensions(encodePNG(t, 640, 480))

	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestProber_Dimensions_jpeg(t *testing.T) {
	t.Parallel()

	w, h, err := ximage.Prober{}.Dimensions(encodeJPEG(t, 100, 300))

	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 300, h)
}

func TestProber_Dimensions_unreadable_input(t *testing.T) {
	t.Parallel()

	_, _, err := ximage.Prober{}.Dimensions([]byte("not an image"))

	require.Error(t, err)
	assert.Equal(t, pincrawl.EINVALID, pincrawl.ErrorCode(err))
}

func TestProber_Dimensions_empty_input(t *testing.T) {
	t.Parallel()

	_, _, err := ximage.Prober{}.Dimensions(nil)

	require.Error(t, err)
}
