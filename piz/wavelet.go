package piz

// Haar wavelet transform, adapted from the OpenEXR ImfWav.cpp algorithm.
//
// encode2D/decode2D operate in place on a 2D nx-by-ny array of 16-bit
// values embedded in a larger shared buffer: base is the array's starting
// index, sx is the stride between adjacent columns, and sy is the stride
// between adjacent rows. For a single-lane (F16) channel sx=1 and sy=nx;
// for a multi-lane (F32/U32) channel's Nth lane, sx equals the channel's
// samples-per-pixel and sy equals nx*samplesPerPixel, so each lane walks
// its own interleaved slice of the channel's working-buffer segment.
//
// There are two encoding modes, selected once per call by maxValue:
//   - wenc14/wdec14: maxValue < 14 bits, plain signed difference arithmetic
//   - wenc16/wdec16: full 16-bit range, modulo arithmetic with an offset so
//     small differences stay small unsigned values
const (
	wavNBits    = 16
	wavAOffset  = 1 << (wavNBits - 1)
	wavMOffset  = 1 << (wavNBits - 1)
	wavModMask  = (1 << wavNBits) - 1
	wavMaxFor14 = 1 << 14
)

// wenc14 encodes a pair of values into average and difference using 14-bit
// signed arithmetic. Only valid when every value in the transform is below
// wavMaxFor14.
func wenc14(a, b uint16) (l, h uint16) {
	as := int(int16(a))
	bs := int(int16(b))

	ms := (as + bs) >> 1
	ds := as - bs

	return uint16(int16(ms)), uint16(int16(ds))
}

// wdec14 is the inverse of wenc14.
func wdec14(l, h uint16) (a, b uint16) {
	ms := int(int16(l))
	ds := int(int16(h))

	as := ms + ((ds + 1) >> 1)
	bs := ms - (ds >> 1)

	return uint16(int16(as)), uint16(int16(bs))
}

// wenc16 encodes a pair of values into average and difference using modulo
// arithmetic, valid for the full 16-bit range.
func wenc16(a, b uint16) (l, h uint16) {
	ao := (int(a) + wavAOffset) & wavModMask
	m := (ao + int(b)) >> 1
	d := ao - int(b)

	if d < 0 {
		m = (m + wavMOffset) & wavModMask
	}
	d &= wavModMask

	return uint16(m), uint16(d)
}

// wdec16 is the inverse of wenc16.
func wdec16(l, h uint16) (a, b uint16) {
	m := int(l)
	d := int(h)
	bb := (m - (d >> 1)) & wavModMask
	aa := (d + bb - wavAOffset) & wavModMask
	return uint16(aa), uint16(bb)
}

// wdec14_4 decodes a 2x2 block of wavelet coefficients in one operation,
// equivalent to four wdec14 calls with the intermediate values reused.
func wdec14_4(data []uint16, px, p01, p10, p11 int) {
	a := int(int16(data[px]))
	b := int(int16(data[p10]))
	c := int(int16(data[p01]))
	d := int(int16(data[p11]))

	i00 := a + (b & 1) + (b >> 1)
	i10 := i00 - b
	i01 := c + (d & 1) + (d >> 1)
	i11 := i01 - d

	a = i00 + (i01 & 1) + (i01 >> 1)
	b = a - i01
	c = i10 + (i11 & 1) + (i11 >> 1)
	d = c - i11

	data[px] = uint16(int16(a))
	data[p01] = uint16(int16(b))
	data[p10] = uint16(int16(c))
	data[p11] = uint16(int16(d))
}

// wdec16_4 is wdec14_4's modulo-arithmetic counterpart.
func wdec16_4(data []uint16, px, p01, p10, p11 int) {
	l0 := int(data[px])
	h0 := int(data[p10])
	l1 := int(data[p01])
	h1 := int(data[p11])

	bb0 := (l0 - (h0 >> 1)) & wavModMask
	aa0 := (h0 + bb0 - wavAOffset) & wavModMask
	bb1 := (l1 - (h1 >> 1)) & wavModMask
	aa1 := (h1 + bb1 - wavAOffset) & wavModMask

	bb := (aa0 - (aa1 >> 1)) & wavModMask
	aa := (aa1 + bb - wavAOffset) & wavModMask
	dd := (bb0 - (bb1 >> 1)) & wavModMask
	cc := (bb1 + dd - wavAOffset) & wavModMask

	data[px] = uint16(aa)
	data[p01] = uint16(bb)
	data[p10] = uint16(cc)
	data[p11] = uint16(dd)
}

// encode2D applies the forward 2D Haar wavelet transform in place to the
// nx-by-ny array embedded in data at the given base/strides. maxValue is
// the largest value that can appear (post lookup-table remapping); values
// below wavMaxFor14 select the cheaper 14-bit path.
func encode2D(data []uint16, base, nx, ny, sx, sy int, maxValue uint16) {
	if nx == 0 || ny == 0 {
		return
	}

	w14 := maxValue < wavMaxFor14

	n := nx
	if ny < nx {
		n = ny
	}

	p := 1
	p2 := 2

	for p2 <= n {
		sy1 := sy * p
		sy2 := sy * p2
		sx1 := sx * p
		sx2 := sx * p2

		for py := 0; py <= sy*(ny-p2); py += sy2 {
			for px := py; px <= py+sx*(nx-p2); px += sx2 {
				p01 := base + px + sx1
				p10 := base + px + sy1
				p11 := p10 + sx1
				p00 := base + px

				if w14 {
					i00l, i01h := wenc14(data[p00], data[p01])
					i10l, i11h := wenc14(data[p10], data[p11])
					data[p00], data[p10] = wenc14(i00l, i10l)
					data[p01], data[p11] = wenc14(i01h, i11h)
				} else {
					i00l, i01h := wenc16(data[p00], data[p01])
					i10l, i11h := wenc16(data[p10], data[p11])
					data[p00], data[p10] = wenc16(i00l, i10l)
					data[p01], data[p11] = wenc16(i01h, i11h)
				}
			}

			if nx&p != 0 {
				p00 := base + py + sx*(nx-p)
				p10 := p00 + sy1
				if w14 {
					data[p00], data[p10] = wenc14(data[p00], data[p10])
				} else {
					data[p00], data[p10] = wenc16(data[p00], data[p10])
				}
			}
		}

		if ny&p != 0 {
			py := sy * (ny - p)
			for px := py; px <= py+sx*(nx-p2); px += sx2 {
				p00 := base + px
				p01 := p00 + sx1
				if w14 {
					data[p00], data[p01] = wenc14(data[p00], data[p01])
				} else {
					data[p00], data[p01] = wenc16(data[p00], data[p01])
				}
			}
		}

		p = p2
		p2 <<= 1
	}
}

// decode2D is the inverse of encode2D.
func decode2D(data []uint16, base, nx, ny, sx, sy int, maxValue uint16) {
	if nx == 0 || ny == 0 {
		return
	}

	w14 := maxValue < wavMaxFor14

	n := nx
	if ny < nx {
		n = ny
	}

	p := 1
	for p <= n {
		p <<= 1
	}
	p >>= 1
	p2 := p
	p >>= 1

	for p >= 1 {
		sy1 := sy * p
		sy2 := sy * p2
		sx1 := sx * p
		sx2 := sx * p2

		for py := 0; py <= sy*(ny-p2); py += sy2 {
			for px := py; px <= py+sx*(nx-p2); px += sx2 {
				p00 := base + px
				p01 := p00 + sx1
				p10 := p00 + sy1
				p11 := p10 + sx1

				if w14 {
					wdec14_4(data, p00, p01, p10, p11)
				} else {
					wdec16_4(data, p00, p01, p10, p11)
				}
			}

			if nx&p != 0 {
				p00 := base + py + sx*(nx-p)
				p10 := p00 + sy1
				var a, b uint16
				if w14 {
					a, b = wdec14(data[p00], data[p10])
				} else {
					a, b = wdec16(data[p00], data[p10])
				}
				data[p00] = a
				data[p10] = b
			}
		}

		if ny&p != 0 {
			py := sy * (ny - p)
			for px := py; px <= py+sx*(nx-p2); px += sx2 {
				p00 := base + px
				p01 := p00 + sx1
				var a, b uint16
				if w14 {
					a, b = wdec14(data[p00], data[p01])
				} else {
					a, b = wdec16(data[p00], data[p01])
				}
				data[p00] = a
				data[p01] = b
			}
		}

		p2 = p
		p >>= 1
	}
}

// encodeChannel runs encode2D once per lane of a channel segment: lane l
// (0 <= l < samplesPerPixel) occupies the strided view starting at
// seg.tmpStartIndex+l with column stride samplesPerPixel and row stride
// nx*samplesPerPixel.
func encodeChannel(tmp []uint16, seg channelSegment, maxValue uint16) {
	sx := seg.samplesPerPixel
	sy := seg.resolution.X * sx
	for lane := 0; lane < seg.samplesPerPixel; lane++ {
		encode2D(tmp, seg.tmpStartIndex+lane, seg.resolution.X, seg.resolution.Y, sx, sy, maxValue)
	}
}

// decodeChannel is the inverse of encodeChannel.
func decodeChannel(tmp []uint16, seg channelSegment, maxValue uint16) {
	sx := seg.samplesPerPixel
	sy := seg.resolution.X * sx
	for lane := 0; lane < seg.samplesPerPixel; lane++ {
		decode2D(tmp, seg.tmpStartIndex+lane, seg.resolution.X, seg.resolution.Y, sx, sy, maxValue)
	}
}
