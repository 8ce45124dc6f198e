package piz

import (
	"math/rand"

	"github.com/mrjoshuak/go-piz/half"
)

// randomFiniteHalf returns a random finite, non-NaN half-float bit pattern,
// built through half.FromFloat32 so seed-scenario fixtures exercise the
// codec against values that look like real HDR pixel data rather than
// arbitrary 16-bit garbage (the codec itself is bit-exact and doesn't care
// either way).
func randomFiniteHalf(rng *rand.Rand) uint16 {
	v := (rng.Float32() - 0.5) * 2 * float32(rng.Intn(1<<10))
	return half.FromFloat32(v).Bits()
}

// genPixelBytes synthesizes a row-major, channel-interleaved pixel byte
// stream for rect under channels, honoring each channel's YSampling the
// same way CompressBytes expects: for each row, only the channels that
// admit that row (mod_p(y, s)==0) contribute their next line of samples.
func genPixelBytes(rng *rand.Rand, channels []ChannelDescriptor, rect Rectangle) []byte {
	segments := buildChannelSegments(channels, rect)
	total := 0
	for _, seg := range segments {
		total += seg.u16Count()
	}

	out := make([]byte, total*2)
	pos := 0
	for y := rect.Position.Y; y < rect.End().Y; y++ {
		for _, ch := range channels {
			if modP(y, ch.YSampling) != 0 {
				continue
			}
			for x := 0; x < rect.Size.X*ch.Type.samplesPerPixel(); x++ {
				var v uint16
				if ch.Type == F16 {
					v = randomFiniteHalf(rng)
				} else {
					v = uint16(rng.Intn(65536))
				}
				out[pos] = byte(v)
				out[pos+1] = byte(v >> 8)
				pos += 2
			}
		}
	}
	return out[:pos]
}
