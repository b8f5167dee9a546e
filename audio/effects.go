package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"snake-arcade/game/types"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a fixed-length tone whose frequency slides linearly
// from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a steady tone
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates a tone gliding from startFreq to endFreq
func NewSweep(startFreq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     startFreq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.duration {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.duration {
			return i, true
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is mapped to silence
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

const (
	chimeDuration    = 90 * time.Millisecond
	chimeAttack      = 5 * time.Millisecond
	chimeRelease     = 60 * time.Millisecond
	gameOverDuration = 600 * time.Millisecond
	gameOverAttack   = 10 * time.Millisecond
	gameOverRelease  = 250 * time.Millisecond
)

var foodTones = map[types.FoodType]struct {
	freq float64
	wave WaveType
}{
	types.FoodNormal: {660, WaveSine},
	types.FoodBonus:  {990, WaveTriangle},
	types.FoodSpeed:  {1320, WaveSquare},
}

// FoodSound is a short chime pitched by food type
func FoodSound(food types.FoodType, vol float64, rate beep.SampleRate) beep.Streamer {
	tone, ok := foodTones[food]
	if !ok {
		tone = foodTones[types.FoodNormal]
	}
	osc := NewOscillator(tone.freq, chimeDuration, tone.wave, rate)
	shaped := NewEnvelope(osc, chimeDuration, chimeAttack, chimeRelease, rate)

	// Square waves play quieter
	if tone.wave == WaveSquare {
		vol *= 0.4
	}
	return newVolume(shaped, vol)
}

// GameOverSound glides down an octave and a half
func GameOverSound(vol float64, rate beep.SampleRate) beep.Streamer {
	sweep := NewSweep(440, 165, gameOverDuration, WaveTriangle, rate)
	shaped := NewEnvelope(sweep, gameOverDuration, gameOverAttack, gameOverRelease, rate)
	return newVolume(shaped, vol)
}
