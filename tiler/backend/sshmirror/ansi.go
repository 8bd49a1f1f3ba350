package sshmirror

import (
	"strconv"
	"strings"

	"github.com/valerio/go-tiler/tiler/video"
)

const (
	esc   = "\x1b"
	csi   = esc + "["
	reset = csi + "0m"

	upperHalfBlock = "▀"
)

func moveTo(row, col int) string {
	return csi + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func clearScreen() string      { return csi + "2J" }
func hideCursor() string       { return csi + "?25l" }
func showCursor() string       { return csi + "?25h" }
func enableAltScreen() string  { return csi + "?1049h" }
func disableAltScreen() string { return csi + "?1049l" }

// EncodeHalfBlocks renders fb as true-colour ANSI text, two pixel rows per
// line. Each cell is an upper half block with the top pixel as foreground
// and the bottom pixel as background; an odd last row gets black below it.
// The SGR sequence is only repeated when a cell's colors differ from the
// previous cell on the same line.
func EncodeHalfBlocks(fb *video.FrameBuffer) string {
	var sb strings.Builder
	w, h := fb.Width(), fb.Height()
	sb.Grow(w * (h + 1) / 2 * 8)

	for y := 0; y < h; y += 2 {
		top := fb.Row(y)
		var bottom []video.Color
		if y+1 < h {
			bottom = fb.Row(y + 1)
		}

		first := true
		var prevFg, prevBg video.Color
		for x := 0; x < w; x++ {
			fg, bg := top[x], video.Black
			if bottom != nil {
				bg = bottom[x]
			}
			if first || fg != prevFg || bg != prevBg {
				writeCellSGR(&sb, fg, bg)
				prevFg, prevBg, first = fg, bg, false
			}
			sb.WriteString(upperHalfBlock)
		}
		sb.WriteString(reset)
		sb.WriteString("\r\n")
	}
	return sb.String()
}

// writeCellSGR sets both colors in one sequence so no state leaks between cells.
func writeCellSGR(sb *strings.Builder, fg, bg video.Color) {
	fr, fgG, fb := fg.RGB()
	br, bgG, bb := bg.RGB()

	sb.WriteString(csi + "38;2;")
	writeRGB(sb, fr, fgG, fb)
	sb.WriteString(";48;2;")
	writeRGB(sb, br, bgG, bb)
	sb.WriteByte('m')
}

func writeRGB(sb *strings.Builder, r, g, b uint8) {
	sb.WriteString(strconv.Itoa(int(r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b)))
}
