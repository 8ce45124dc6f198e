package piz

import "fmt"

// channelSegment is the derived per-channel state: the half-open range of
// the working buffer this channel owns, plus the resolution and per-sample
// lane count needed to walk that range.
type channelSegment struct {
	tmpStartIndex, tmpEndIndex int
	resolution                 V2i
	ySampling                  int
	samplesPerPixel            int
}

// u16Count returns the total number of 16-bit lanes this channel occupies.
func (c *channelSegment) u16Count() int {
	return c.resolution.X * c.resolution.Y * c.samplesPerPixel
}

// subsampledHeight returns the number of rows of rectangle r that channel
// sampling ySampling admits, using the mod_p row predicate rather than a
// plain division, so the count is exact regardless of the phase of
// r.Position.Y relative to ySampling.
func subsampledHeight(r Rectangle, ySampling int) int {
	h := r.Size.Y
	if h == 0 {
		return 0
	}
	y0 := r.Position.Y
	return divP(y0+h-1, ySampling) - divP(y0-1, ySampling)
}

// buildChannelSegments tiles the working buffer across channels in
// channel-list order: segments are disjoint and the last one ends exactly
// at tmpLen.
func buildChannelSegments(channels []ChannelDescriptor, rect Rectangle) []channelSegment {
	segments := make([]channelSegment, len(channels))
	index := 0

	for i, ch := range channels {
		seg := channelSegment{
			tmpStartIndex:   index,
			tmpEndIndex:     index,
			resolution:      V2i{X: rect.Size.X, Y: subsampledHeight(rect, ch.YSampling)},
			ySampling:       ch.YSampling,
			samplesPerPixel: ch.Type.samplesPerPixel(),
		}
		index += seg.u16Count()
		segments[i] = seg
	}

	return segments
}

// assertSegmentsTileBuffer checks that the caller-supplied channel list and
// rectangle account for exactly tmpLen 16-bit lanes. A mismatch means the
// caller passed channels/rectangle/expected-size that disagree with each
// other, which is a programmer error rather than malformed input.
func assertSegmentsTileBuffer(segments []channelSegment, tmpLen int) {
	if len(segments) == 0 {
		if tmpLen != 0 {
			panic(fmt.Sprintf("piz: channel list is empty but working buffer has length %d", tmpLen))
		}
		return
	}
	if segments[len(segments)-1].tmpEndIndex != tmpLen {
		panic(fmt.Sprintf("piz: channel segments end at %d, want %d", segments[len(segments)-1].tmpEndIndex, tmpLen))
	}
}

// format is the lane byte-order policy selected once per codec call.
type format int

const (
	formatIndependent format = iota // every lane is little-endian
	formatNative                    // all-F16 fast path; lanes are still little-endian
)

// selectFormat chooses the wire format for a channel list: Native is used
// only when every channel's sample type is F16, because a half float's on-disk
// lane and its native in-memory uint16 representation are the same size and
// (on the common little-endian target) the same bytes.
func selectFormat(channels []ChannelDescriptor) format {
	for _, ch := range channels {
		if ch.Type != F16 {
			return formatIndependent
		}
	}
	return formatNative
}

// interleaveInto copies pixel bytes into the working buffer tmp, row-major:
// for each admitted row, for each channel, the channel's next u16sPerLine
// lanes are copied from the pixel stream into
// tmp[tmpEndIndex:tmpEndIndex+u16sPerLine], and tmpEndIndex advances.
func interleaveInto(tmp []uint16, segments []channelSegment, rect Rectangle, pixels []byte, f format) {
	in := 0
	for y := rect.Position.Y; y < rect.End().Y; y++ {
		for i := range segments {
			seg := &segments[i]
			if modP(y, seg.ySampling) != 0 {
				continue
			}

			u16sPerLine := seg.resolution.X * seg.samplesPerPixel
			dst := tmp[seg.tmpEndIndex : seg.tmpEndIndex+u16sPerLine]

			readLanes(dst, pixels[in:in+u16sPerLine*2], f)
			in += u16sPerLine * 2

			seg.tmpEndIndex += u16sPerLine
		}
	}
}

// deinterleaveFrom is the inverse of interleaveInto: it copies lanes out of
// the working buffer into a freshly sized pixel byte stream, in the same
// row-major, per-channel order.
func deinterleaveFrom(tmp []uint16, segments []channelSegment, rect Rectangle, out []byte, f format) {
	outPos := 0
	for y := rect.Position.Y; y < rect.End().Y; y++ {
		for i := range segments {
			seg := &segments[i]
			if modP(y, seg.ySampling) != 0 {
				continue
			}

			u16sPerLine := seg.resolution.X * seg.samplesPerPixel
			src := tmp[seg.tmpEndIndex : seg.tmpEndIndex+u16sPerLine]

			writeLanes(out[outPos:outPos+u16sPerLine*2], src, f)
			outPos += u16sPerLine * 2

			seg.tmpEndIndex += u16sPerLine
		}
	}
}

// readLanes decodes len(dst) 16-bit lanes from src (2*len(dst) bytes) per
// the selected format.
func readLanes(dst []uint16, src []byte, f format) {
	if f == formatIndependent {
		for i := range dst {
			dst[i] = uint16(src[2*i]) | uint16(src[2*i+1])<<8
		}
		return
	}
	// Native: the lanes are assembled explicitly as little-endian, so the
	// result is bit identical to the Independent path on every host.
	for i := range dst {
		lo := src[2*i]
		hi := src[2*i+1]
		dst[i] = uint16(lo) | uint16(hi)<<8
	}
}

// writeLanes is the inverse of readLanes.
func writeLanes(dst []byte, src []uint16, f format) {
	_ = f // Native and Independent both write every lane little-endian.
	for i, v := range src {
		dst[2*i] = byte(v)
		dst[2*i+1] = byte(v >> 8)
	}
}
