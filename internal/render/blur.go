package render

import "image"

// boxBlur applies a horizontal then a vertical box blur of the given radius
// to the premultiplied pixels of img.
func boxBlur(img *image.RGBA, radius int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	radius = min(radius, max(w, h))
	tmp := make([]uint8, len(img.Pix))
	blurPass(img.Pix, tmp, w, h, 4, img.Stride, radius)
	blurPass(tmp, img.Pix, h, w, img.Stride, 4, radius)
}

// blurPass averages along lines of n pixels. step moves to the next pixel in
// a line and lineStep to the next line.
func blurPass(src, dst []uint8, n, lines, step, lineStep, radius int) {
	window := uint32(2*radius + 1)
	for line := 0; line < lines; line++ {
		base := line * lineStep
		for c := 0; c < 4; c++ {
			var sum uint32
			at := func(i int) uint32 {
				if i < 0 || i >= n {
					return 0
				}
				return uint32(src[base+i*step+c])
			}
			for i := 0; i <= radius && i < n; i++ {
				sum += at(i)
			}
			for i := 0; i < n; i++ {
				dst[base+i*step+c] = uint8(sum / window)
				sum += at(i + radius + 1)
				sum -= at(i - radius)
			}
		}
	}
}
