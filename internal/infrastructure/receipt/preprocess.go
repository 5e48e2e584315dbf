package receipt

import (
	"bytes"
	"fmt"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/disintegration/imaging"
)

// DefaultMaxDimension bounds the longest edge of an uploaded receipt
const DefaultMaxDimension = 1600

const jpegQuality = 85

// Preprocessor normalizes receipt photos before extraction: EXIF orientation
// is applied, the longest edge is capped and the result is re-encoded as JPEG.
type Preprocessor struct {
	maxDimension int
	maxBytes     int64
}

// NewPreprocessor creates a Preprocessor. Non-positive limits use defaults;
// maxBytes <= 0 disables the size check.
func NewPreprocessor(maxDimension int, maxBytes int64) *Preprocessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &Preprocessor{maxDimension: maxDimension, maxBytes: maxBytes}
}

// Prepare returns a normalized copy of image
func (p *Preprocessor) Prepare(image ledger.ReceiptImage) (ledger.ReceiptImage, error) {
	if p.maxBytes > 0 && int64(len(image.Data)) > p.maxBytes {
		return ledger.ReceiptImage{}, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(image.Data))
	}

	img, err := imaging.Decode(bytes.NewReader(image.Data), imaging.AutoOrientation(true))
	if err != nil {
		return ledger.ReceiptImage{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	b := img.Bounds()
	if b.Dx() > p.maxDimension || b.Dy() > p.maxDimension {
		if b.Dx() >= b.Dy() {
			img = imaging.Resize(img, p.maxDimension, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, p.maxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return ledger.ReceiptImage{}, fmt.Errorf("encode receipt: %w", err)
	}
	return ledger.ReceiptImage{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Filename:    image.Filename,
	}, nil
}
