package tui

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

const brailleBase = 0x2800

// dot bits of a braille cell, indexed [row][col]
var brailleDots = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid. Each terminal cell holds 2x4 dots.
type Canvas struct {
	cols, rows int
	cells      []rune
	labels     map[int]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]rune, cols*rows),
		labels: make(map[int]rune),
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
	clear(c.labels)
}

func (c *Canvas) DotsWide() int { return c.cols * 2 }
func (c *Canvas) DotsHigh() int { return c.rows * 4 }

// Dot sets one dot. Out-of-range dots are ignored.
func (c *Canvas) Dot(x, y int) {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= brailleDots[y%4][x%2]
}

// Label replaces the cell containing dot (x, y) with r.
func (c *Canvas) Label(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.DotsWide() || y >= c.DotsHigh() {
		return
	}
	c.labels[(y/4)*c.cols+x/2] = r
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			if r, ok := c.labels[i]; ok {
				b.WriteRune(r)
				continue
			}
			b.WriteRune(c.cells[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// View maps the xy plane of render space onto a canvas. Extent is the
// render-space distance from the center to the nearest canvas edge.
type View struct {
	Extent float32
}

// Project returns the dot coordinates of p. The y axis points up.
func (v View) Project(c *Canvas, p mgl32.Vec3) (int, int) {
	w, h := float32(c.DotsWide()), float32(c.DotsHigh())
	half := min(w, h) / 2
	k := half / v.Extent
	x := w/2 + p[0]*k
	y := h/2 - p[1]*k
	return int(x), int(y)
}
