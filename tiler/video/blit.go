package video

// ColorKey marks a single pixel value as transparent during a blit.
type ColorKey struct {
	Color   Color
	Enabled bool
}

// Opaque copies every pixel.
var Opaque = ColorKey{}

// Key returns a ColorKey that skips pixels equal to c.
func Key(c Color) ColorKey {
	return ColorKey{Color: c, Enabled: true}
}

// Blit copies a size.X by size.Y rectangle from src at srcPos into dst at
// dstPos, row by row. With an enabled key, source pixels equal to the key
// leave the destination untouched.
//
// Nothing is clipped here. Callers hand in rectangles that already lie
// inside both buffers; anything else panics on slice bounds.
func Blit(dst *FrameBuffer, dstPos Point, src *FrameBuffer, srcPos Point, size Point, key ColorKey) {
	w := size.X
	for y := 0; y < size.Y; y++ {
		srcStart := (srcPos.Y+y)*src.width + srcPos.X
		dstStart := (dstPos.Y+y)*dst.width + dstPos.X
		srcRow := src.buffer[srcStart : srcStart+w]
		dstRow := dst.buffer[dstStart : dstStart+w]

		if !key.Enabled {
			copy(dstRow, srcRow)
			continue
		}

		for x, c := range srcRow {
			if c != key.Color {
				dstRow[x] = c
			}
		}
	}
}
