package piz

import (
	"math/rand"
	"testing"
)

func roundTripEncode2D(t *testing.T, nx, ny int, maxValue uint16) {
	t.Helper()
	data := make([]uint16, nx*ny)
	rng := rand.New(rand.NewSource(int64(nx*1000 + ny)))
	for i := range data {
		data[i] = uint16(rng.Intn(int(maxValue) + 1))
	}
	original := append([]uint16(nil), data...)

	encode2D(data, 0, nx, ny, 1, nx, maxValue)
	decode2D(data, 0, nx, ny, 1, nx, maxValue)

	for i := range data {
		if data[i] != original[i] {
			t.Errorf("nx=%d ny=%d maxValue=%d: index %d got %d, want %d", nx, ny, maxValue, i, data[i], original[i])
		}
	}
}

func TestEncode2DRoundTrip(t *testing.T) {
	sizes := [][2]int{{0, 0}, {1, 1}, {1, 7}, {7, 1}, {2, 2}, {4, 4}, {5, 3}, {17, 11}, {64, 64}, {3, 100}}
	for _, sz := range sizes {
		roundTripEncode2D(t, sz[0], sz[1], 255)    // 14-bit path
		roundTripEncode2D(t, sz[0], sz[1], 65535)  // 16-bit path
	}
}

func TestEncode2DZeroDimension(t *testing.T) {
	data := []uint16{1, 2, 3}
	before := append([]uint16(nil), data...)
	encode2D(data, 0, 0, 5, 1, 0, 1000)
	for i := range data {
		if data[i] != before[i] {
			t.Errorf("encode2D with nx=0 must not touch data")
		}
	}
}

func TestEncodeDecodeChannelStrided(t *testing.T) {
	// Simulate an F32 channel: 2 lanes per pixel, interleaved.
	const w, h, spp = 6, 5, 2
	seg := channelSegment{
		tmpStartIndex:   3, // nonzero base, as it would be after a preceding channel
		resolution:      V2i{X: w, Y: h},
		samplesPerPixel: spp,
	}
	total := seg.tmpStartIndex + w*h*spp
	tmp := make([]uint16, total)
	rng := rand.New(rand.NewSource(42))
	for i := seg.tmpStartIndex; i < total; i++ {
		tmp[i] = uint16(rng.Intn(1000))
	}
	original := append([]uint16(nil), tmp...)

	encodeChannel(tmp, seg, 999)
	decodeChannel(tmp, seg, 999)

	for i := range tmp {
		if tmp[i] != original[i] {
			t.Errorf("index %d: got %d, want %d", i, tmp[i], original[i])
		}
	}
}

func TestWenc14Wdec14RoundTrip(t *testing.T) {
	for a := 0; a < 16384; a += 97 {
		for b := 0; b < 16384; b += 131 {
			l, h := wenc14(uint16(a), uint16(b))
			ra, rb := wdec14(l, h)
			if int(ra) != a || int(rb) != b {
				t.Fatalf("wdec14(wenc14(%d,%d)) = (%d,%d)", a, b, ra, rb)
			}
		}
	}
}

func TestWenc16Wdec16RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		a := uint16(rng.Intn(65536))
		b := uint16(rng.Intn(65536))
		l, h := wenc16(a, b)
		ra, rb := wdec16(l, h)
		if ra != a || rb != b {
			t.Fatalf("wdec16(wenc16(%d,%d)) = (%d,%d)", a, b, ra, rb)
		}
	}
}
