package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// cell is what one terminal character shows: two stacked sub-pixels or a
// text rune. The zero colour means transparent.
type cell struct {
	top, bottom color.RGBA
	ch          rune
	fg          color.RGBA
}

// Canvas is a Surface backed by terminal cells with 2x vertical resolution
// using half-block characters. Logical coordinates are scaled to terminal
// pixels. Render only emits cells that changed since the previous frame.
type Canvas struct {
	PaintStack

	termWidth      int // Actual terminal columns
	termHeight     int // Actual terminal rows
	subPixelHeight int // termHeight * 2

	pixels []color.RGBA // [y * termWidth + x]
	text   []rune       // [row * termWidth + col], 0 when empty
	textFg []color.RGBA
	prev   []cell // what the terminal currently shows

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	forceRedraw bool

	renderBuf strings.Builder
	numBuf    [20]byte
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		PaintStack:    PaintStack{Paint: DefaultPaint},
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]color.RGBA, c.subPixelHeight*termWidth)
		c.text = make([]rune, termHeight*termWidth)
		c.textFg = make([]color.RGBA, termHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.forceRedraw = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.forceRedraw = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// ForceRedraw makes the next Render emit every cell.
func (c *Canvas) ForceRedraw() { c.forceRedraw = true }

// Clear resets all pixels and text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	clear(c.text)
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalWidth, c.logicalHeight
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixelAt returns the colour at terminal pixel coordinates.
func (c *Canvas) pixelAt(x, y int) color.RGBA {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}
	}
	return c.pixels[y*c.termWidth+x]
}

// span converts a logical interval to a half-open pixel interval covering
// at least one pixel when size is positive.
func span(pos, size, scale float64) (int, int) {
	p0 := int(math.Round(pos * scale))
	p1 := int(math.Round((pos + size) * scale))
	if p1 <= p0 && size > 0 {
		p1 = p0 + 1
	}
	return p0, p1
}

// ClearRect makes the area transparent and removes text over it.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	px0, px1 := span(x, w, c.scaleX)
	py0, py1 := span(y, h, c.scaleY)
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			c.setPixel(px, py, color.RGBA{})
		}
	}
	for row := py0 / 2; row <= (py1-1)/2; row++ {
		for col := px0; col < px1; col++ {
			if row >= 0 && row < c.termHeight && col >= 0 && col < c.termWidth {
				c.text[row*c.termWidth+col] = 0
			}
		}
	}
}

// FillRect fills the area with the fill colour.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.fillPixels(x, y, w, h, c.Fill)
}

func (c *Canvas) fillPixels(x, y, w, h float64, col color.RGBA) {
	px0, px1 := span(x, w, c.scaleX)
	py0, py1 := span(y, h, c.scaleY)
	for py := py0; py < py1; py++ {
		for px := px0; px < px1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// StrokeRect outlines the area with the stroke colour.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	px0, px1 := span(x, w, c.scaleX)
	py0, py1 := span(y, h, c.scaleY)
	right, bottom := px1-1, py1-1
	c.lineInPixels(px0, py0, right, py0, c.Stroke)
	c.lineInPixels(right, py0, right, bottom, c.Stroke)
	c.lineInPixels(right, bottom, px0, bottom, c.Stroke)
	c.lineInPixels(px0, bottom, px0, py0, c.Stroke)
}

// lineInPixels draws a line using Bresenham's algorithm.
func (c *Canvas) lineInPixels(x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawImageRegion samples the sprite region with nearest-neighbour scaling.
func (c *Canvas) DrawImageRegion(img *Sprite, sx, sy, sw, sh int, dx, dy, dw, dh float64) {
	if img.Missing() || sw <= 0 || sh <= 0 {
		fallback := color.RGBA{R: 255, G: 0, B: 255, A: 255}
		if img != nil {
			fallback = img.Fallback()
		}
		c.fillPixels(dx, dy, dw, dh, fallback)
		return
	}

	px0, px1 := span(dx, dw, c.scaleX)
	py0, py1 := span(dy, dh, c.scaleY)
	pw := float64(px1 - px0)
	ph := float64(py1 - py0)
	for py := py0; py < py1; py++ {
		v := sy + int((float64(py-py0)+0.5)*float64(sh)/ph)
		for px := px0; px < px1; px++ {
			u := sx + int((float64(px-px0)+0.5)*float64(sw)/pw)
			if col, ok := img.At(u, v); ok {
				c.setPixel(px, py, col)
			}
		}
	}
}

// FillText writes s into the text layer in the fill colour. Text snaps to
// terminal cells; alignment is measured in cells.
func (c *Canvas) FillText(s string, x, y float64) {
	n := utf8.RuneCountInString(s)
	col := int(math.Round(x * c.scaleX))
	row := int(y*c.scaleY) / 2
	switch c.Align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	if row < 0 || row >= c.termHeight {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.termWidth {
			idx := row*c.termWidth + col
			c.text[idx] = r
			c.textFg[idx] = c.Fill
		}
		col++
	}
}

// cellAt resolves what the terminal cell at (col, row) should show.
func (c *Canvas) cellAt(col, row int) cell {
	idx := row*c.termWidth + col
	if r := c.text[idx]; r != 0 {
		return cell{ch: r, fg: c.textFg[idx]}
	}
	return cell{
		top:    c.pixelAt(col, row*2),
		bottom: c.pixelAt(col, row*2+1),
	}
}

// maxChunkSize is the maximum bytes to write at once. It stays under a
// typical 1500 byte MTU once SSH framing is added.
const maxChunkSize = 1400

// Render outputs changed cells to the writer using half-block characters
// and 24-bit colour escapes.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	style := styleState{}

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			idx := row*c.termWidth + col
			cur := c.cellAt(col, row)
			if !c.forceRedraw && cur == c.prev[idx] {
				continue
			}
			c.prev[idx] = cur

			c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			c.writeCell(&style, cur)
		}
	}
	if style.set {
		c.renderBuf.WriteString(ansiReset)
	}
	c.forceRedraw = false

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

// styleState tracks the SGR colours last emitted within one render.
type styleState struct {
	set    bool
	fg, bg color.RGBA
}

func (c *Canvas) writeCell(st *styleState, cur cell) {
	var fg, bg color.RGBA
	var ch rune
	switch {
	case cur.ch != 0:
		fg, ch = cur.fg, cur.ch
	case cur.top.A > 0 && cur.bottom.A > 0 && cur.top == cur.bottom:
		fg, ch = cur.top, BlockFull
	case cur.top.A > 0 && cur.bottom.A > 0:
		fg, bg, ch = cur.top, cur.bottom, BlockUpperHalf
	case cur.top.A > 0:
		fg, ch = cur.top, BlockUpperHalf
	case cur.bottom.A > 0:
		fg, ch = cur.bottom, BlockLowerHalf
	default:
		ch = ' '
	}

	if !st.set || st.fg != fg || st.bg != bg {
		c.renderBuf.WriteString(ansiReset)
		if fg.A > 0 {
			c.writeColor(38, fg)
		}
		if bg.A > 0 {
			c.writeColor(48, bg)
		}
		st.set, st.fg, st.bg = true, fg, bg
	}
	c.renderBuf.WriteRune(ch)
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor appends an SGR truecolor sequence; layer is 38 (fg) or 48 (bg).
func (c *Canvas) writeColor(layer int, col color.RGBA) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.B), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.WriteString(ansiReset)

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal position (col, row)
// inside the render area, ignoring the centering offset.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts an absolute 1-based terminal position (as
// reported by mouse events) to logical coordinates at the cell centre.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
