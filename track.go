package plexus

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Track loops a value through a list of keyframes. Keyframes are evenly
// spaced over the track duration and each segment is eased with the same
// function. After the last keyframe the track restarts at the first one;
// time left over at a segment boundary carries into the next segment, so a
// loop always lasts exactly the track duration.
//
// There is no global animation manager; owners call Update themselves.
type Track struct {
	seq   *gween.Sequence
	delay float32
	value float64
}

// NewTrack creates a looping track over keys lasting duration seconds per
// loop, starting after delay seconds. A track with fewer than two keys holds
// its single value (or zero).
func NewTrack(keys []float64, duration, delay float32, fn ease.TweenFunc) *Track {
	t := &Track{delay: delay}
	if len(keys) > 0 {
		t.value = keys[0]
	}
	if len(keys) < 2 {
		return t
	}
	seg := duration / float32(len(keys)-1)
	t.seq = gween.NewSequence()
	for i := 1; i < len(keys); i++ {
		t.seq.Add(gween.New(float32(keys[i-1]), float32(keys[i]), seg, fn))
	}
	t.seq.SetLoop(-1)
	return t
}

// Value returns the current value without advancing.
func (t *Track) Value() float64 {
	return t.value
}

// Update advances the track by dt seconds and returns the current value.
func (t *Track) Update(dt float32) float64 {
	if t.seq == nil {
		return t.value
	}
	if t.delay > 0 {
		t.delay -= dt
		if t.delay > 0 {
			return t.value
		}
		dt = -t.delay
		t.delay = 0
	}
	v, _, _ := t.seq.Update(dt)
	t.value = float64(v)
	return t.value
}
