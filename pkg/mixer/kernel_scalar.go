// ABOUTME: Scalar mixing kernels, one frame per step
// ABOUTME: Mixes straight into the caller's buffer without alignment or carry
package mixer

// mixLayerScalar snapshots one layer and accumulates its contribution one
// frame at a time. buf is interleaved stereo sized to the exact request.
func mixLayerScalar(lay *layer, vol float32, buf []float32) {
	flag := State(lay.flag.Load())
	if flag == stateFree {
		return
	}
	cur := lay.cursor.Load()
	gl, gr := unpackGain(lay.gain.Load())
	gl *= vol
	gr *= vol
	if flag < Play {
		if lay.fade > 0 && cur < lay.end {
			if lay.snd.channels == 1 {
				cur = scalarFadeMono(lay, cur, gl, gr, buf)
			} else {
				cur = scalarFadeStereo(lay, cur, gl, gr, buf)
			}
		}
		if flag == Stop && (lay.fade == 0 || cur == lay.end) {
			lay.flag.Store(uint32(stateFree))
		}
	} else {
		if lay.snd.channels == 1 {
			cur = scalarPlayMono(lay, flag == Loop, cur, gl, gr, buf)
		} else {
			cur = scalarPlayStereo(lay, flag == Loop, cur, gl, gr, buf)
		}
		if flag == Play && cur == lay.end {
			lay.flag.CompareAndSwap(uint32(Play), uint32(stateFree))
		}
	}
}

func scalarFadeMono(lay *layer, cur int32, gl, gr float32, buf []float32) int32 {
	old := cur
	snd := lay.snd
	if lay.fade < lay.end-cur {
		for i := 0; i < len(buf); i += 2 {
			if lay.fade == 0 {
				break
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				sam := snd.data[cur%snd.length]
				buf[i] += sam * f * gl
				buf[i+1] += sam * f * gr
			}
			lay.fade--
			cur++
		}
	} else {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				break
			}
			if cur >= 0 {
				sam := snd.data[cur%snd.length]
				buf[i] += sam * gl
				buf[i+1] += sam * gr
			}
			cur++
		}
	}
	return publishCursor(lay, old, cur)
}

func scalarFadeStereo(lay *layer, cur int32, gl, gr float32, buf []float32) int32 {
	old := cur
	snd := lay.snd
	if lay.fade < lay.end-cur {
		for i := 0; i < len(buf); i += 2 {
			if lay.fade == 0 {
				break
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				off := (cur % snd.length) * 2
				buf[i] += snd.data[off] * f * gl
				buf[i+1] += snd.data[off+1] * f * gr
			}
			lay.fade--
			cur++
		}
	} else {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				break
			}
			if cur >= 0 {
				off := (cur % snd.length) * 2
				buf[i] += snd.data[off] * gl
				buf[i+1] += snd.data[off+1] * gr
			}
			cur++
		}
	}
	return publishCursor(lay, old, cur)
}

func scalarPlayMono(lay *layer, loop bool, cur int32, gl, gr float32, buf []float32) int32 {
	old := cur
	snd := lay.snd
	if lay.fade < lay.fmax {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				sam := snd.data[cur%snd.length]
				buf[i] += sam * f * gl
				buf[i+1] += sam * f * gr
			}
			if lay.fade < lay.fmax {
				lay.fade++
			}
			cur++
		}
	} else {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				sam := snd.data[cur%snd.length]
				buf[i] += sam * gl
				buf[i+1] += sam * gr
			}
			cur++
		}
	}
	return publishCursor(lay, old, cur)
}

func scalarPlayStereo(lay *layer, loop bool, cur int32, gl, gr float32, buf []float32) int32 {
	old := cur
	snd := lay.snd
	if lay.fade < lay.fmax {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				off := (cur % snd.length) * 2
				buf[i] += snd.data[off] * f * gl
				buf[i+1] += snd.data[off+1] * f * gr
			}
			if lay.fade < lay.fmax {
				lay.fade++
			}
			cur++
		}
	} else {
		for i := 0; i < len(buf); i += 2 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				off := (cur % snd.length) * 2
				buf[i] += snd.data[off] * gl
				buf[i+1] += snd.data[off+1] * gr
			}
			cur++
		}
	}
	return publishCursor(lay, old, cur)
}
