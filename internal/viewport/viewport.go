// Package viewport holds the pan/zoom math for the detail viewer: a
// scale factor and a 2D offset over the fixed-size artwork raster,
// independent of storage coordinates. All operations are pure.
package viewport

import (
	"math"

	"frame-art-backend/internal/imaging"
)

const (
	// FitPadding is the margin kept around the artwork when fitted.
	FitPadding = 48.0

	MinScale = 0.02
	MaxScale = 8.0

	// ZoomStep is the factor applied by keyboard zoom in/out.
	ZoomStep = 1.25
)

const scaleEpsilon = 1e-6

// View is the canvas state. OffsetX/OffsetY displace the image center
// from the viewport center, in screen pixels.
type View struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	ViewportWidth  float64
	ViewportHeight float64
}

// New returns a view fitted to the given viewport, centered.
func New(viewportWidth, viewportHeight float64) View {
	return View{
		Scale:          FitScale(viewportWidth, viewportHeight),
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// FitScale is the largest scale at which the full artwork fits inside
// the viewport minus the padding margin: the smaller of the
// horizontal-fit and vertical-fit ratios.
func FitScale(viewportWidth, viewportHeight float64) float64 {
	availW := viewportWidth - 2*FitPadding
	availH := viewportHeight - 2*FitPadding
	if availW <= 0 || availH <= 0 {
		return MinScale
	}
	fit := math.Min(availW/float64(imaging.TargetWidth), availH/float64(imaging.TargetHeight))
	return clampScale(fit)
}

// Pan applies a direct drag delta to the offset.
func (v View) Pan(dx, dy float64) View {
	v.OffsetX += dx
	v.OffsetY += dy
	return v
}

// ZoomAt rescales to newScale keeping the screen point (anchorX,
// anchorY) visually stationary: the image-space coordinate under the
// anchor before the zoom stays under it afterwards.
func (v View) ZoomAt(anchorX, anchorY, newScale float64) View {
	newScale = clampScale(newScale)
	if v.Scale <= 0 {
		v.Scale = MinScale
	}

	// Anchor position relative to the displaced image center.
	relX := anchorX - v.ViewportWidth/2 - v.OffsetX
	relY := anchorY - v.ViewportHeight/2 - v.OffsetY

	ratio := newScale / v.Scale
	v.OffsetX = anchorX - v.ViewportWidth/2 - relX*ratio
	v.OffsetY = anchorY - v.ViewportHeight/2 - relY*ratio
	v.Scale = newScale
	return v
}

// ZoomBy applies a multiplicative zoom anchored at a screen point.
func (v View) ZoomBy(anchorX, anchorY, factor float64) View {
	return v.ZoomAt(anchorX, anchorY, v.Scale*factor)
}

// Pinch composes a two-finger gesture: the distance ratio drives scale
// and the midpoint anchors the zoom.
func (v View) Pinch(midX, midY, distanceRatio float64) View {
	return v.ZoomBy(midX, midY, distanceRatio)
}

// Reset returns to the fitted, centered view.
func (v View) Reset() View {
	v.Scale = FitScale(v.ViewportWidth, v.ViewportHeight)
	v.OffsetX = 0
	v.OffsetY = 0
	return v
}

// ActualSize zooms to scale 1 anchored at a screen point.
func (v View) ActualSize(anchorX, anchorY float64) View {
	return v.ZoomAt(anchorX, anchorY, 1)
}

// ToggleFit implements the double-click toggle: a fitted view jumps to
// actual size at the click point, anything else returns to fit.
func (v View) ToggleFit(anchorX, anchorY float64) View {
	if v.IsFit() {
		return v.ActualSize(anchorX, anchorY)
	}
	return v.Reset()
}

// IsFit reports whether the view is at the fitted, centered state.
func (v View) IsFit() bool {
	return math.Abs(v.Scale-FitScale(v.ViewportWidth, v.ViewportHeight)) < scaleEpsilon &&
		v.OffsetX == 0 && v.OffsetY == 0
}

// Resize adjusts the viewport dimensions. A fitted view stays fitted;
// otherwise scale and offset are preserved.
func (v View) Resize(viewportWidth, viewportHeight float64) View {
	wasFit := v.IsFit()
	v.ViewportWidth = viewportWidth
	v.ViewportHeight = viewportHeight
	if wasFit {
		return v.Reset()
	}
	return v
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
