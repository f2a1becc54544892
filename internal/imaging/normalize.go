// Package imaging coerces synthesized images to the fixed TV raster.
package imaging

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Target raster for television display.
const (
	TargetWidth  = 3840
	TargetHeight = 2160
)

// Normalized is a re-encoded PNG at the target raster. SourceWidth and
// SourceHeight record what the upstream model actually returned; they
// feed diagnostics only, never control flow.
type Normalized struct {
	PNG          []byte
	SourceWidth  int
	SourceHeight int
}

// Normalize decodes raw image bytes, cover-fits them to the target
// raster (scale to fully cover, crop symmetrically from the center,
// never letterbox or distort), and re-encodes as PNG.
func Normalize(raw []byte) (Normalized, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return Normalized{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	filled := imaging.Fill(img, TargetWidth, TargetHeight, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, filled, imaging.PNG); err != nil {
		return Normalized{}, fmt.Errorf("failed to encode png: %w", err)
	}

	return Normalized{
		PNG:          buf.Bytes(),
		SourceWidth:  srcW,
		SourceHeight: srcH,
	}, nil
}
