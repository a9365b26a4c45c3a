package dsp

// resample maps src onto the raw buffer by linear interpolation, then
// applies input gain. An empty src zeroes the buffer; a length match is
// a straight copy so no interpolation artifacts appear.
func (p *Pipeline) resample(src []float64) {
	dst := p.rawBuf

	switch {
	case len(src) == 0:
		for i := range dst {
			dst[i] = 0
		}
		return

	case len(src) == len(dst):
		copy(dst, src)

	default:
		span := len(dst) - 1
		if span < 1 {
			span = 1
		}
		step := float64(len(src)-1) / float64(span)

		for i := range dst {
			pos := float64(i) * step
			lo := int(pos)
			hi := lo
			if lo+1 < len(src) {
				hi = lo + 1
			}

			frac := pos - float64(lo)
			dst[i] = src[lo]*(1.0-frac) + src[hi]*frac
		}
	}

	for i := range dst {
		dst[i] = clamp(dst[i] * p.cfg.Intensity)
	}
}
