// ABOUTME: Block mixing kernels, 4 frames per step
// ABOUTME: Unrolled lanes into the 4-frame-aligned accumulator, cursor published via CAS
package mixer

// mixLayerBlock snapshots one layer and accumulates its contribution in
// 4-frame steps. acc is interleaved stereo with a multiple-of-4 frame count.
func mixLayerBlock(lay *layer, vol float32, acc []float32) {
	flag := State(lay.flag.Load())
	if flag == stateFree {
		return
	}
	cur := lay.cursor.Load()
	gl, gr := unpackGain(lay.gain.Load())
	gl *= vol
	gr *= vol
	if flag < Play {
		// Stop or Halt: fade out unless already silent or at the end
		if lay.fade > 0 && cur < lay.end {
			if lay.snd.channels == 1 {
				cur = blockFadeMono(lay, cur, gl, gr, acc)
			} else {
				cur = blockFadeStereo(lay, cur, gl, gr, acc)
			}
		}
		// a fully faded Stop layer is reclaimed; a faded Halt layer stays
		// claimed so its handle can be resumed
		if flag == Stop && (lay.fade == 0 || cur == lay.end) {
			lay.flag.Store(uint32(stateFree))
		}
	} else {
		if lay.snd.channels == 1 {
			cur = blockPlayMono(lay, flag == Loop, cur, gl, gr, acc)
		} else {
			cur = blockPlayStereo(lay, flag == Loop, cur, gl, gr, acc)
		}
		// CAS rather than a plain store: a concurrent control-side state
		// change (say, to Stop) must win so the next call honors it
		if flag == Play && cur == lay.end {
			lay.flag.CompareAndSwap(uint32(Play), uint32(stateFree))
		}
	}
}

// publishCursor stores the advanced cursor unless the control goroutine moved
// it during mixing, in which case the control-side seek wins.
func publishCursor(lay *layer, old, cur int32) int32 {
	if !lay.cursor.CompareAndSwap(old, cur) {
		cur = lay.cursor.Load()
	}
	return cur
}

func blockFadeMono(lay *layer, cur int32, gl, gr float32, acc []float32) int32 {
	old := cur
	n := int32(len(acc)) / 2
	snd := lay.snd
	if lay.fade < lay.end-cur {
		for i := int32(0); i < n; i += 4 {
			if lay.fade == 0 {
				break
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				fl, fr := f*gl, f*gr
				d := snd.data[cur%snd.length:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * fl
				o[1] += d[0] * fr
				o[2] += d[1] * fl
				o[3] += d[1] * fr
				o[4] += d[2] * fl
				o[5] += d[2] * fr
				o[6] += d[3] * fl
				o[7] += d[3] * fr
			}
			lay.fade -= 4
			cur += 4
		}
	} else {
		// too close to the end for a full fade, play out at full gain
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				break
			}
			if cur >= 0 {
				d := snd.data[cur%snd.length:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * gl
				o[1] += d[0] * gr
				o[2] += d[1] * gl
				o[3] += d[1] * gr
				o[4] += d[2] * gl
				o[5] += d[2] * gr
				o[6] += d[3] * gl
				o[7] += d[3] * gr
			}
			cur += 4
		}
	}
	return publishCursor(lay, old, cur)
}

func blockFadeStereo(lay *layer, cur int32, gl, gr float32, acc []float32) int32 {
	old := cur
	n := int32(len(acc)) / 2
	snd := lay.snd
	if lay.fade < lay.end-cur {
		for i := int32(0); i < n; i += 4 {
			if lay.fade == 0 {
				break
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				fl, fr := f*gl, f*gr
				d := snd.data[(cur%snd.length)*2:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * fl
				o[1] += d[1] * fr
				o[2] += d[2] * fl
				o[3] += d[3] * fr
				o[4] += d[4] * fl
				o[5] += d[5] * fr
				o[6] += d[6] * fl
				o[7] += d[7] * fr
			}
			lay.fade -= 4
			cur += 4
		}
	} else {
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				break
			}
			if cur >= 0 {
				d := snd.data[(cur%snd.length)*2:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * gl
				o[1] += d[1] * gr
				o[2] += d[2] * gl
				o[3] += d[3] * gr
				o[4] += d[4] * gl
				o[5] += d[5] * gr
				o[6] += d[6] * gl
				o[7] += d[7] * gr
			}
			cur += 4
		}
	}
	return publishCursor(lay, old, cur)
}

func blockPlayMono(lay *layer, loop bool, cur int32, gl, gr float32, acc []float32) int32 {
	old := cur
	n := int32(len(acc)) / 2
	snd := lay.snd
	if lay.fade < lay.fmax {
		// fading in
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				fl, fr := f*gl, f*gr
				d := snd.data[cur%snd.length:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * fl
				o[1] += d[0] * fr
				o[2] += d[1] * fl
				o[3] += d[1] * fr
				o[4] += d[2] * fl
				o[5] += d[2] * fr
				o[6] += d[3] * fl
				o[7] += d[3] * fr
			}
			if lay.fade < lay.fmax {
				lay.fade += 4
			}
			cur += 4
		}
	} else {
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				d := snd.data[cur%snd.length:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * gl
				o[1] += d[0] * gr
				o[2] += d[1] * gl
				o[3] += d[1] * gr
				o[4] += d[2] * gl
				o[5] += d[2] * gr
				o[6] += d[3] * gl
				o[7] += d[3] * gr
			}
			cur += 4
		}
	}
	return publishCursor(lay, old, cur)
}

func blockPlayStereo(lay *layer, loop bool, cur int32, gl, gr float32, acc []float32) int32 {
	old := cur
	n := int32(len(acc)) / 2
	snd := lay.snd
	if lay.fade < lay.fmax {
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				f := float32(lay.fade) / float32(lay.fmax)
				fl, fr := f*gl, f*gr
				d := snd.data[(cur%snd.length)*2:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * fl
				o[1] += d[1] * fr
				o[2] += d[2] * fl
				o[3] += d[3] * fr
				o[4] += d[4] * fl
				o[5] += d[5] * fr
				o[6] += d[6] * fl
				o[7] += d[7] * fr
			}
			if lay.fade < lay.fmax {
				lay.fade += 4
			}
			cur += 4
		}
	} else {
		for i := int32(0); i < n; i += 4 {
			if cur == lay.end {
				if !loop {
					break
				}
				cur = lay.start
			}
			if cur >= 0 {
				d := snd.data[(cur%snd.length)*2:]
				o := acc[i*2 : i*2+8]
				o[0] += d[0] * gl
				o[1] += d[1] * gr
				o[2] += d[2] * gl
				o[3] += d[3] * gr
				o[4] += d[4] * gl
				o[5] += d[5] * gr
				o[6] += d[6] * gl
				o[7] += d[7] * gr
			}
			cur += 4
		}
	}
	return publishCursor(lay, old, cur)
}
