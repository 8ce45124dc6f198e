// Package piz implements the PIZ wavelet-plus-Huffman compression codec;
// see the package doc comment in types.go for the full description.
package piz

import (
	"errors"

	"github.com/mrjoshuak/go-piz/internal/xdr"
)

// ErrInvalidData is returned by DecompressBytes whenever the compressed
// bytes are structurally malformed: a header field out of range, a
// truncated or corrupt Huffman stream, or a decoded rank outside the
// lookup table. A channel/rectangle argument that doesn't account for the
// expected output size is a programmer error and panics instead of
// returning ErrInvalidData. Per this codec's single error
// category, callers cannot distinguish which of those happened, only that
// the input cannot be trusted.
var ErrInvalidData = errors.New("piz: invalid compression data")

// CompressBytes compresses one rectangle's worth of interleaved pixel bytes
// for the given channel list. pixels must already be organized as OpenEXR
// stores an uncompressed scanline block: row-major, each row holding every
// admitted channel's line of samples in channel-list order, with one 16-bit
// lane per F16 sample and two per F32/U32 sample, each lane little-endian.
// Channels with YSampling > 1 must have
// already had their non-admitted rows omitted by the caller.
func CompressBytes(pixels []byte, channels []ChannelDescriptor, rect Rectangle) ([]byte, error) {
	if len(pixels) == 0 {
		return nil, nil
	}

	segments := buildChannelSegments(channels, rect)
	tmpLen := len(pixels) / 2

	tmp := make([]uint16, tmpLen)
	f := selectFormat(channels)
	interleaveInto(tmp, segments, rect, pixels, f)
	assertSegmentsTileBuffer(segments, tmpLen)

	bitmap := buildBitmap(tmp)
	minNZ, maxNZ := minMaxNonZero(bitmap)

	fwd, maxValue := forwardTable(bitmap)
	applyForwardLookup(fwd, tmp)

	for i := range segments {
		encodeChannel(tmp, segments[i], uint16(maxValue))
	}

	huffmanBytes := HuffmanCompress(tmp)

	w := xdr.NewBufferWriter(4 + bitmapSize + 4 + len(huffmanBytes))
	w.WriteUint16(uint16(minNZ))
	w.WriteUint16(uint16(maxNZ))
	if minNZ <= maxNZ {
		w.WriteBytes(bitmap[minNZ : maxNZ+1])
	}
	w.WriteInt32(int32(len(huffmanBytes)))
	w.WriteBytes(huffmanBytes)

	return w.Bytes(), nil
}

// DecompressBytes inverts CompressBytes: expectedSize is the pixel byte
// length CompressBytes originally received for this same channels/rect
// combination (the caller, which owns the outer data window and channel
// list, already knows this).
func DecompressBytes(compressed []byte, channels []ChannelDescriptor, rect Rectangle, expectedSize int) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}
	if len(compressed) == 0 {
		return nil, ErrInvalidData
	}

	r := xdr.NewReader(compressed)
	minNZ, err := r.ReadUint16()
	if err != nil {
		return nil, ErrInvalidData
	}
	maxNZ, err := r.ReadUint16()
	if err != nil {
		return nil, ErrInvalidData
	}
	if int(maxNZ) >= bitmapSize {
		return nil, ErrInvalidData
	}

	var bitmap [bitmapSize]byte
	if minNZ <= maxNZ {
		if err := r.ReadBytesInto(bitmap[minNZ : maxNZ+1]); err != nil {
			return nil, ErrInvalidData
		}
	}

	huffmanLength, err := r.ReadInt32()
	if err != nil || huffmanLength < 0 || int(huffmanLength) > r.Len() {
		return nil, ErrInvalidData
	}
	huffmanBytes := make([]byte, huffmanLength)
	if err := r.ReadBytesInto(huffmanBytes); err != nil {
		return nil, ErrInvalidData
	}

	_, maxValue := forwardTable(bitmap)
	rev := reverseTable(bitmap, maxValue)

	tmpLen := expectedSize / 2
	tmp := make([]uint16, tmpLen)
	if err := HuffmanDecompress(huffmanBytes, tmp); err != nil {
		return nil, ErrInvalidData
	}

	segments := buildChannelSegments(channels, rect)

	for i := range segments {
		decodeChannel(tmp, segments[i], uint16(maxValue))
	}

	if err := applyReverseLookup(rev, tmp); err != nil {
		return nil, err
	}

	out := make([]byte, expectedSize)
	f := selectFormat(channels)
	deinterleaveFrom(tmp, segments, rect, out, f)
	assertSegmentsTileBuffer(segments, tmpLen)

	return out, nil
}
