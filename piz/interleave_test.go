package piz

import (
	"math/rand"
	"testing"
)

func TestSubsampledHeightMatchesModPCount(t *testing.T) {
	r := Rectangle{Position: V2i{X: -30, Y: -7}, Size: V2i{X: 5, Y: 23}}
	for _, s := range []int{1, 2, 3, 4, 5} {
		want := 0
		for y := r.Position.Y; y < r.End().Y; y++ {
			if modP(y, s) == 0 {
				want++
			}
		}
		if got := subsampledHeight(r, s); got != want {
			t.Errorf("subsampledHeight(%+v, %d) = %d, want %d", r, s, got, want)
		}
	}
}

func TestSelectFormat(t *testing.T) {
	allHalf := []ChannelDescriptor{{Type: F16, YSampling: 1}, {Type: F16, YSampling: 1}}
	if selectFormat(allHalf) != formatNative {
		t.Errorf("all-F16 channel list should select Native format")
	}

	mixed := []ChannelDescriptor{{Type: F16, YSampling: 1}, {Type: F32, YSampling: 1}}
	if selectFormat(mixed) != formatIndependent {
		t.Errorf("mixed channel list should select Independent format")
	}
}

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	rect := Rectangle{Position: V2i{X: -3, Y: 1}, Size: V2i{X: 17, Y: 11}}
	channels := []ChannelDescriptor{
		{Type: F32, YSampling: 1},
		{Type: F16, YSampling: 2},
		{Type: U32, YSampling: 1},
	}

	total := 0
	for _, ch := range channels {
		total += rect.Size.X * subsampledHeight(rect, ch.YSampling) * ch.Type.samplesPerPixel()
	}

	src := make([]byte, total*2)
	rng := rand.New(rand.NewSource(1))
	rng.Read(src)

	f := selectFormat(channels)

	segs := buildChannelSegments(channels, rect)
	tmp := make([]uint16, total)
	interleaveInto(tmp, segs, rect, src, f)
	assertSegmentsTileBuffer(segs, total)

	segs2 := buildChannelSegments(channels, rect)
	out := make([]byte, total*2)
	deinterleaveFrom(tmp, segs2, rect, out, f)
	assertSegmentsTileBuffer(segs2, total)

	for i := range src {
		if src[i] != out[i] {
			t.Fatalf("byte %d: got %d, want %d", i, out[i], src[i])
		}
	}
}

func TestBuildChannelSegmentsDisjoint(t *testing.T) {
	rect := Rectangle{Position: V2i{X: 0, Y: 0}, Size: V2i{X: 4, Y: 8}}
	channels := []ChannelDescriptor{
		{Type: F16, YSampling: 1},
		{Type: F32, YSampling: 2},
	}
	segs := buildChannelSegments(channels, rect)
	if segs[0].tmpStartIndex != 0 {
		t.Errorf("first segment start = %d, want 0", segs[0].tmpStartIndex)
	}
	if segs[1].tmpStartIndex != segs[0].tmpStartIndex+segs[0].u16Count() {
		t.Errorf("second segment does not start where first ends")
	}
}
