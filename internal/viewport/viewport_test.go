package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame-art-backend/internal/imaging"
	"frame-art-backend/internal/viewport"
)

// imagePointUnder recovers the image-space coordinate (relative to the
// image center) currently rendered under a screen point.
func imagePointUnder(v viewport.View, screenX, screenY float64) (float64, float64) {
	return (screenX - v.ViewportWidth/2 - v.OffsetX) / v.Scale,
		(screenY - v.ViewportHeight/2 - v.OffsetY) / v.Scale
}

func TestNewFitsImageInsideViewport(t *testing.T) {
	v := viewport.New(1280, 720)

	expected := (1280.0 - 2*viewport.FitPadding) / float64(imaging.TargetWidth)
	vertical := (720.0 - 2*viewport.FitPadding) / float64(imaging.TargetHeight)
	if vertical < expected {
		expected = vertical
	}

	assert.InDelta(t, expected, v.Scale, 1e-9)
	assert.Zero(t, v.OffsetX)
	assert.Zero(t, v.OffsetY)
	assert.True(t, v.IsFit())

	// The scaled image never exceeds the padded viewport box.
	assert.LessOrEqual(t, v.Scale*float64(imaging.TargetWidth), 1280.0-2*viewport.FitPadding+1e-6)
	assert.LessOrEqual(t, v.Scale*float64(imaging.TargetHeight), 720.0-2*viewport.FitPadding+1e-6)
}

func TestZoomAtKeepsAnchorStationary(t *testing.T) {
	v := viewport.New(1280, 720)
	v = v.Pan(37, -12)

	anchorX, anchorY := 900.0, 200.0
	beforeX, beforeY := imagePointUnder(v, anchorX, anchorY)

	zoomed := v.ZoomAt(anchorX, anchorY, v.Scale*2)
	afterX, afterY := imagePointUnder(zoomed, anchorX, anchorY)

	assert.InDelta(t, beforeX, afterX, 1e-6)
	assert.InDelta(t, beforeY, afterY, 1e-6)
	assert.InDelta(t, v.Scale*2, zoomed.Scale, 1e-9)
}

func TestZoomClamps(t *testing.T) {
	v := viewport.New(1280, 720)

	zoomedOut := v.ZoomAt(0, 0, 1e-9)
	assert.InDelta(t, viewport.MinScale, zoomedOut.Scale, 1e-12)

	zoomedIn := v.ZoomAt(0, 0, 1e9)
	assert.InDelta(t, viewport.MaxScale, zoomedIn.Scale, 1e-12)
}

func TestPanAppliesDragDelta(t *testing.T) {
	v := viewport.New(1280, 720)
	v = v.Pan(15, -40)
	v = v.Pan(5, 10)

	assert.InDelta(t, 20, v.OffsetX, 1e-9)
	assert.InDelta(t, -30, v.OffsetY, 1e-9)
}

func TestPinchScalesAroundMidpoint(t *testing.T) {
	v := viewport.New(1280, 720)

	midX, midY := 640.0, 360.0
	beforeX, beforeY := imagePointUnder(v, midX, midY)

	pinched := v.Pinch(midX, midY, 1.5)
	afterX, afterY := imagePointUnder(pinched, midX, midY)

	assert.InDelta(t, v.Scale*1.5, pinched.Scale, 1e-9)
	assert.InDelta(t, beforeX, afterX, 1e-6)
	assert.InDelta(t, beforeY, afterY, 1e-6)
}

func TestToggleFitRoundTrip(t *testing.T) {
	v := viewport.New(1280, 720)
	require.True(t, v.IsFit())

	actual := v.ToggleFit(640, 360)
	assert.InDelta(t, 1.0, actual.Scale, 1e-9)
	assert.False(t, actual.IsFit())

	back := actual.ToggleFit(100, 100)
	assert.True(t, back.IsFit())
}

func TestActualSizeSetsScaleOne(t *testing.T) {
	v := viewport.New(1280, 720)
	actual := v.ActualSize(640, 360)
	assert.InDelta(t, 1.0, actual.Scale, 1e-9)
}

func TestResizePreservesFit(t *testing.T) {
	v := viewport.New(1280, 720)
	resized := v.Resize(1920, 1080)

	assert.True(t, resized.IsFit())
	assert.InDelta(t, viewport.FitScale(1920, 1080), resized.Scale, 1e-9)
}

func TestResizeKeepsZoomedState(t *testing.T) {
	v := viewport.New(1280, 720).ZoomAt(100, 100, 2).Pan(5, 5)
	resized := v.Resize(1920, 1080)

	assert.InDelta(t, v.Scale, resized.Scale, 1e-9)
	assert.InDelta(t, v.OffsetX, resized.OffsetX, 1e-9)
}

func TestTinyViewportFallsBackToMinScale(t *testing.T) {
	assert.InDelta(t, viewport.MinScale, viewport.FitScale(10, 10), 1e-12)
}
