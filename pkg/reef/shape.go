package reef

import "math"

// MinDimension is the smallest usable grid height or width. Grids smaller
// than this are not a meaningful site footprint.
const MinDimension = 5

// Shape derives grid dimensions for totalUnits placement units and a
// width:height aspect ratio. The height approximates
// sqrt(totalUnits/aspectRatio) and the width aspectRatio·height, both
// floored to integers and clamped to at least MinDimension. Shape only
// computes dimensions; it does not allocate the grid.
func Shape(totalUnits int, aspectRatio float64) (height, width int) {
	if totalUnits < 0 {
		totalUnits = 0
	}
	height = int(math.Sqrt(float64(totalUnits) / aspectRatio))
	if height < MinDimension {
		height = MinDimension
	}
	width = int(aspectRatio * float64(height))
	if width < MinDimension {
		width = MinDimension
	}
	return height, width
}

// CellArea returns the per-cell area annotation for a site of siteArea
// square meters mapped onto a height × width grid. Returns 0 for a
// degenerate grid.
func CellArea(siteArea float64, height, width int) float64 {
	if height <= 0 || width <= 0 {
		return 0
	}
	return siteArea / float64(height*width)
}
