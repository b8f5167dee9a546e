package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"snake-arcade/game/types"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays the gameplay cues through the system speaker.
// Until Initialize succeeds every Play call is a no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a silent sound manager
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log,
	}
}

// Initialize opens the speaker. It fails when no audio device is available.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close stops all sounds
func (sm *SoundManager) Close() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return nil
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
	return nil
}

// FoodEaten plays the chime for the eaten food type
func (sm *SoundManager) FoodEaten(food types.FoodType) {
	sm.play(FoodSound(food, sm.volume, sampleRate))
}

// GameOver plays the falling game-over tone
func (sm *SoundManager) GameOver() {
	sm.play(GameOverSound(sm.volume, sampleRate))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
