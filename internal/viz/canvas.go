package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-cell framebuffer. Alongside the dot grid it
// keeps one particle type per cell so the renderer can color cells;
// when types collide in a cell the latest write wins.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Types         [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Types:  make([][]int, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Types[i] = make([]int, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
			c.Types[i][j] = -1
		}
	}
	return c
}

// Set lights a dot at (x, y) in sub-pixel coordinates and tags the
// cell with the particle type. The canvas size in sub-pixels is
// (Width*2) x (Height*4).
func (c *Canvas) Set(x, y, particleType int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	c.Types[row][col] = particleType
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.Types[i][j] = -1
		}
	}
}

// String renders without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render colors each cell by its tagged type using the palette's
// styles. Runs of same-type cells are styled together to keep the
// escape-sequence overhead down.
func (c *Canvas) Render(styles []lipgloss.Style) string {
	if len(styles) == 0 {
		return c.String()
	}
	var b strings.Builder
	for row := range c.Grid {
		runType := -2
		var run []rune
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runType < 0 {
				b.WriteString(string(run))
			} else {
				b.WriteString(styles[runType%len(styles)].Render(string(run)))
			}
			run = run[:0]
		}
		for col, r := range c.Grid[row] {
			t := c.Types[row][col]
			if t != runType {
				flush()
				runType = t
			}
			run = append(run, r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
