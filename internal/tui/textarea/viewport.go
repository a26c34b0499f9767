package textarea

import (
	"math"
	"sync/atomic"
)

// Viewport is the scroll position and size last published by the renderer,
// packed into one word as width<<48 | height<<32 | row<<16 | col. Loads and
// stores are relaxed; readers may see the previous frame.
type Viewport struct {
	v atomic.Uint64
}

func clampU16(n int) uint64 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint64(n)
}

func (vp *Viewport) store(row, col, width, height int) {
	vp.v.Store(clampU16(width)<<48 | clampU16(height)<<32 | clampU16(row)<<16 | clampU16(col))
}

// Rect returns the top row, left column, width and height.
func (vp *Viewport) Rect() (row, col, width, height int) {
	u := vp.v.Load()
	return int(uint16(u >> 16)), int(uint16(u)), int(uint16(u >> 48)), int(uint16(u >> 32))
}

// ScrollTop returns the top row and left column.
func (vp *Viewport) ScrollTop() (row, col int) {
	row, col, _, _ = vp.Rect()
	return row, col
}

// bounds returns the inclusive last row and column covered by the viewport.
func (vp *Viewport) bounds() (rowTop, colTop, rowBottom, colBottom int) {
	rowTop, colTop, width, height := vp.Rect()
	return rowTop, colTop, max(rowTop, rowTop+height-1), max(colTop, colTop+width-1)
}

// scroll moves the top-left corner, saturating at zero.
func (vp *Viewport) scroll(rows, cols int) {
	row, col, width, height := vp.Rect()
	vp.store(max(row+rows, 0), max(col+cols, 0), width, height)
}

// nextScrollTop keeps cursor inside a window of length cells starting at prev.
func nextScrollTop(prev, cursor, length int) int {
	switch {
	case length <= 0:
		return prev
	case cursor < prev:
		return cursor
	case prev+length <= cursor:
		return cursor + 1 - length
	default:
		return prev
	}
}
