package video

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedRotation = errors.New("unsupported rotation")
	ErrInvalidScale        = errors.New("scale must be at least 1")
)

// Rotation is a clockwise rotation applied when a rendered frame is
// transferred to the device.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseRotation maps degrees (0, 90, 180 or 270) to a Rotation.
func ParseRotation(degrees int) (Rotation, error) {
	switch degrees {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return Rotate0, fmt.Errorf("%w: %d degrees", ErrUnsupportedRotation, degrees)
	}
}

func (r Rotation) Degrees() int {
	return int(r) * 90
}

func (r Rotation) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rotation(%d)", int(r))
	}
	return fmt.Sprintf("%d°", r.Degrees())
}

func (r Rotation) valid() bool {
	return r >= Rotate0 && r <= Rotate270
}

// swapsAxes reports whether width and height trade places.
func (r Rotation) swapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}

// LogicalSize is the resolution frames are rendered at before they are
// rotated and scaled onto a deviceW x deviceH display.
func (r Rotation) LogicalSize(deviceW, deviceH, scale int) (w, h int) {
	if scale < 1 {
		scale = 1
	}
	if r.swapsAxes() {
		deviceW, deviceH = deviceH, deviceW
	}
	return deviceW / scale, deviceH / scale
}

// IsIdentity reports whether a transfer would be a plain copy, in which
// case callers should render straight into the device buffer.
func IsIdentity(r Rotation, scale int) bool {
	return r == Rotate0 && scale == 1
}

// Transferrer copies a rendered frame into a device buffer. Every
// destination pixel inside the rotated, scaled source area is written;
// pixels outside it are left alone.
type Transferrer interface {
	Transfer(dst, src *FrameBuffer)
}

// NewTransferrer picks the variant for rot. Each source pixel becomes a
// scale x scale block.
func NewTransferrer(rot Rotation, scale int) (Transferrer, error) {
	if scale < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidScale, scale)
	}

	switch rot {
	case Rotate0:
		return identityTransfer{scale: scale}, nil
	case Rotate90:
		return rotate90Transfer{scale: scale}, nil
	case Rotate180:
		return rotate180Transfer{scale: scale}, nil
	case Rotate270:
		return rotate270Transfer{scale: scale}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRotation, rot)
	}
}

// extent returns how much of dst the scaled source covers.
func extent(dst *FrameBuffer, rotatedW, rotatedH, scale int) (w, h int) {
	return min(dst.width, rotatedW*scale), min(dst.height, rotatedH*scale)
}

type identityTransfer struct {
	scale int
}

func (t identityTransfer) Transfer(dst, src *FrameBuffer) {
	w, h := extent(dst, src.width, src.height, t.scale)

	for dy := 0; dy < h; dy += t.scale {
		srcRow := src.Row(dy / t.scale)
		dstRow := dst.Row(dy)[:w]
		if t.scale == 1 {
			copy(dstRow, srcRow)
			continue
		}

		for dx := range dstRow {
			dstRow[dx] = srcRow[dx/t.scale]
		}
		// the remaining rows of the block repeat the first one
		for rep := 1; rep < t.scale && dy+rep < h; rep++ {
			copy(dst.Row(dy + rep)[:w], dstRow)
		}
	}
}

type rotate90Transfer struct {
	scale int
}

// Transfer rotates clockwise: source (sx, sy) ends up at (H-1-sy, sx).
func (t rotate90Transfer) Transfer(dst, src *FrameBuffer) {
	w, h := extent(dst, src.height, src.width, t.scale)
	last := src.height - 1

	for dy := 0; dy < h; dy++ {
		sx := dy / t.scale
		dstRow := dst.Row(dy)[:w]
		for dx := range dstRow {
			sy := last - dx/t.scale
			dstRow[dx] = src.buffer[sy*src.width+sx]
		}
	}
}

type rotate180Transfer struct {
	scale int
}

func (t rotate180Transfer) Transfer(dst, src *FrameBuffer) {
	w, h := extent(dst, src.width, src.height, t.scale)
	lastX, lastY := src.width-1, src.height-1

	for dy := 0; dy < h; dy++ {
		srcRow := src.Row(lastY - dy/t.scale)
		dstRow := dst.Row(dy)[:w]
		for dx := range dstRow {
			dstRow[dx] = srcRow[lastX-dx/t.scale]
		}
	}
}

type rotate270Transfer struct {
	scale int
}

// Transfer rotates counter-clockwise: source (sx, sy) ends up at (sy, W-1-sx).
func (t rotate270Transfer) Transfer(dst, src *FrameBuffer) {
	w, h := extent(dst, src.height, src.width, t.scale)
	last := src.width - 1

	for dy := 0; dy < h; dy++ {
		sx := last - dy/t.scale
		dstRow := dst.Row(dy)[:w]
		for dx := range dstRow {
			sy := dx / t.scale
			dstRow[dx] = src.buffer[sy*src.width+sx]
		}
	}
}
