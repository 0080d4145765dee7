package layout

import "image"

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// FitCentered returns the largest rectangle with the aspect ratio of
// widthPx:heightPx that fits into rect, centered on both axes.
func FitCentered(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	if widthPx <= 0 || heightPx <= 0 || rect.Empty() {
		return image.Rectangle{Min: rect.Min, Max: rect.Min}
	}
	outW, outH := rect.Dx(), rect.Dy()
	// Compare widthPx/heightPx against outW/outH without dividing.
	if widthPx*outH > heightPx*outW {
		outH = heightPx * outW / widthPx
	} else {
		outW = widthPx * outH / heightPx
	}
	minX := rect.Min.X + (rect.Dx()-outW)/2
	minY := rect.Min.Y + (rect.Dy()-outH)/2
	return image.Rect(minX, minY, minX+outW, minY+outH)
}
