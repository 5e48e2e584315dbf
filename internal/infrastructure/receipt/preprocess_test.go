package receipt

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := imaging.New(w, h, color.NRGBA{R: 240, G: 240, B: 240, A: 255})
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func TestPreprocessor_Prepare(t *testing.T) {
	t.Run("downscales the longest edge", func(t *testing.T) {
		p := NewPreprocessor(1600, 0)
		out, err := p.Prepare(ledger.ReceiptImage{Data: pngOf(t, 800, 3200), ContentType: "image/png", Filename: "tall.png"})
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", out.ContentType)
		assert.Equal(t, "tall.png", out.Filename)

		img, err := imaging.Decode(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, 1600, img.Bounds().Dy())
		assert.Equal(t, 400, img.Bounds().Dx())
	})

	t.Run("leaves small images at their size", func(t *testing.T) {
		p := NewPreprocessor(0, 0)
		out, err := p.Prepare(ledger.ReceiptImage{Data: pngOf(t, 300, 200)})
		require.NoError(t, err)

		img, err := imaging.Decode(bytes.NewReader(out.Data))
		require.NoError(t, err)
		assert.Equal(t, 300, img.Bounds().Dx())
	})

	t.Run("rejects oversized uploads", func(t *testing.T) {
		p := NewPreprocessor(1600, 10)
		_, err := p.Prepare(ledger.ReceiptImage{Data: pngOf(t, 10, 10)})
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("rejects non-images", func(t *testing.T) {
		p := NewPreprocessor(1600, 0)
		_, err := p.Prepare(ledger.ReceiptImage{Data: []byte("%PDF-1.4")})
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})
}
