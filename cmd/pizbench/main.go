// pizbench exercises the PIZ codec against a synthetic pixel block and
// reports its compression ratio and round-trip correctness.
//
// Usage:
//
//	pizbench [-width N] [-height N] [-channels spec] [-seed N]
//
// The -channels flag takes a comma-separated list of sample types (f16,
// f32, u32), one per channel, e.g. "f16,f16,f32".
//
// Exit codes:
//
//	0: round-trip matched
//	1: compression or decompression failed, or the round-trip mismatched
//	2: usage error
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/mrjoshuak/go-piz/half"
	"github.com/mrjoshuak/go-piz/piz"
)

func main() {
	width := flag.Int("width", 64, "rectangle width in pixels")
	height := flag.Int("height", 64, "rectangle height in pixels")
	channelSpec := flag.String("channels", "f16,f16,f16", "comma-separated channel sample types (f16, f32, u32)")
	seed := flag.Int64("seed", 1, "random seed for synthetic pixel data")
	flag.Parse()

	channels, err := parseChannels(*channelSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pizbench: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	rect := piz.Rectangle{Size: piz.V2i{X: *width, Y: *height}}
	rng := rand.New(rand.NewSource(*seed))
	pixels := synthesize(rng, channels, rect)

	compressed, err := piz.CompressBytes(pixels, channels, rect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pizbench: compress: %v\n", err)
		os.Exit(1)
	}

	decompressed, err := piz.DecompressBytes(compressed, channels, rect, len(pixels))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pizbench: decompress: %v\n", err)
		os.Exit(1)
	}

	match := len(decompressed) == len(pixels)
	if match {
		for i := range pixels {
			if pixels[i] != decompressed[i] {
				match = false
				break
			}
		}
	}

	ratio := 0.0
	if len(pixels) > 0 {
		ratio = float64(len(compressed)) / float64(len(pixels))
	}

	fmt.Printf("rect=%dx%d channels=%s\n", *width, *height, *channelSpec)
	fmt.Printf("uncompressed: %d bytes\n", len(pixels))
	fmt.Printf("compressed:   %d bytes (%.1f%%)\n", len(compressed), 100*ratio)
	fmt.Printf("round-trip:   %v\n", match)

	if !match {
		os.Exit(1)
	}
}

func parseChannels(spec string) ([]piz.ChannelDescriptor, error) {
	parts := strings.Split(spec, ",")
	channels := make([]piz.ChannelDescriptor, 0, len(parts))
	for _, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "f16":
			channels = append(channels, piz.ChannelDescriptor{Type: piz.F16, YSampling: 1})
		case "f32":
			channels = append(channels, piz.ChannelDescriptor{Type: piz.F32, YSampling: 1})
		case "u32":
			channels = append(channels, piz.ChannelDescriptor{Type: piz.U32, YSampling: 1})
		default:
			return nil, fmt.Errorf("unknown channel type %q (want f16, f32, or u32)", p)
		}
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("no channels specified")
	}
	return channels, nil
}

func synthesize(rng *rand.Rand, channels []piz.ChannelDescriptor, rect piz.Rectangle) []byte {
	var out []byte
	for y := 0; y < rect.Size.Y; y++ {
		for _, ch := range channels {
			lanes := 1
			if ch.Type != piz.F16 {
				lanes = 2
			}
			for x := 0; x < rect.Size.X*lanes; x++ {
				var v uint16
				if ch.Type == piz.F16 {
					v = half.FromFloat32((rng.Float32() - 0.5) * 8).Bits()
				} else {
					v = uint16(rng.Intn(65536))
				}
				out = append(out, byte(v), byte(v>>8))
			}
		}
	}
	return out
}
