package imagery

// Frame is a single 2-D spatial slice: one value per pixel, stored in
// the same flattened order as the cube's spatial axis (index =
// y*Width + x). Spatial feature reducers consume and produce Frames.
type Frame struct {
	Width  int
	Height int
	Values []float64
}

// NewFrame allocates a zero-filled frame.
func NewFrame(width, height int) Frame {
	return Frame{Width: width, Height: height, Values: make([]float64, width*height)}
}

// At returns the value at column x, row y.
func (f Frame) At(x, y int) float64 { return f.Values[y*f.Width+x] }

// Set writes the value at column x, row y.
func (f Frame) Set(x, y int, v float64) { f.Values[y*f.Width+x] = v }
