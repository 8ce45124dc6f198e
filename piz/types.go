// Package piz implements the PIZ wavelet-plus-Huffman compression codec
// used by high-dynamic-range image formats for 16-bit half-float, 32-bit
// float, and 32-bit unsigned integer pixel channels.
//
// The codec is stateless and single-threaded per call: CompressBytes and
// DecompressBytes own every buffer they allocate and release it on return,
// so concurrent calls with disjoint inputs are safe without any locking.
package piz

// SampleType identifies the on-disk representation of one channel's samples.
type SampleType int

const (
	// F16 is a 16-bit half-precision float, one lane per sample.
	F16 SampleType = iota
	// F32 is a 32-bit single-precision float, two lanes per sample.
	F32
	// U32 is a 32-bit unsigned integer, two lanes per sample.
	U32
)

// samplesPerPixel returns the number of 16-bit lanes one sample of this type
// occupies in the working buffer: 1 for F16, 2 for F32/U32.
func (t SampleType) samplesPerPixel() int {
	if t == F16 {
		return 1
	}
	return 2
}

// ChannelDescriptor is the codec-facing metadata for one channel. Channel
// name is not used by the codec; it is the outer format's concern.
type ChannelDescriptor struct {
	Type SampleType
	// YSampling is the vertical subsampling factor; 1 means full resolution.
	// Horizontal subsampling is not supported: the outer format is expected
	// to have already omitted non-admitted columns from the pixel stream.
	YSampling int
}

// V2i is an integer 2D point or size.
type V2i struct {
	X, Y int
}

// Rectangle is an axis-aligned integer pixel region. Position may be
// negative (as in an OpenEXR data window); Size is always non-negative.
type Rectangle struct {
	Position V2i
	Size     V2i
}

// End returns the exclusive end point of the rectangle (Position + Size).
func (r Rectangle) End() V2i {
	return V2i{X: r.Position.X + r.Size.X, Y: r.Position.Y + r.Size.Y}
}

// Area returns Size.X * Size.Y.
func (r Rectangle) Area() int {
	return r.Size.X * r.Size.Y
}

// divP is the division paired with modP, using only truncating integer
// division: for y > 0 it is floor(x/y), for y < 0 it is ceil(x/y), so that
// modP always lands in [0, |y|).
//
//	modp(x,y) == x - y * divp(x,y)
//	divp(5,-3) == -1, modp(5,-3) == 2
func divP(x, y int) int {
	if x >= 0 {
		if y >= 0 {
			return x / y
		}
		return -(x / -y)
	}
	if y >= 0 {
		return -((y - 1 - x) / y)
	}
	return (-y - 1 - x) / -y
}

// modP is the positive-remainder modulus: for any signed x and nonzero y,
// modP(x, y) is in [0, |y|).
func modP(x, y int) int {
	return x - y*divP(x, y)
}
