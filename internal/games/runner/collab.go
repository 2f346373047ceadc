package runner

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// UI receives one-way notifications from the session.
type UI interface {
	UpdateScore(score int)
	ShowGameOver(final, high int)
	ShowHUD()
	HideHUD()
}

// Clip names a one-shot sound.
type Clip int

const (
	ClipJump Clip = iota
	ClipGameOver
	ClipTyping
)

func (c Clip) String() string {
	switch c {
	case ClipJump:
		return "jump"
	case ClipGameOver:
		return "game_over"
	case ClipTyping:
		return "typing"
	default:
		return "unknown"
	}
}

// Audio receives playback commands. Implementations must not block.
type Audio interface {
	PlayMusic()
	StopMusic()
	SetMusicVolume(v float64)
	PlayOneShot(c Clip, volume float64)
}

// Prefs is a small durable key/value store of integers.
// Absent keys read as 0.
type Prefs interface {
	Int(key string) (int, error)
	SetInt(key string, v int) error
	Delete(keys ...string) error
}

// Env holds the collaborators a session is wired with.
// Nil fields are replaced by no-op implementations.
type Env struct {
	UI    UI
	Audio Audio
	Prefs Prefs
	Log   *log.Logger
}

// withDefaults fills missing collaborators, warning once for each.
func (e Env) withDefaults() Env {
	if e.Log == nil {
		e.Log = log.New(io.Discard)
	}
	if e.UI == nil {
		e.UI = nopUI{}
	}
	if e.Audio == nil {
		e.Log.Warn("no audio output, sounds disabled")
		e.Audio = nopAudio{}
	}
	if e.Prefs == nil {
		e.Log.Warn("no prefs store, progress will not persist")
		e.Prefs = NewMemoryPrefs()
	}
	return e
}

type nopUI struct{}

func (nopUI) UpdateScore(int)       {}
func (nopUI) ShowGameOver(int, int) {}
func (nopUI) ShowHUD()              {}
func (nopUI) HideHUD()              {}

type nopAudio struct{}

func (nopAudio) PlayMusic()                {}
func (nopAudio) StopMusic()                {}
func (nopAudio) SetMusicVolume(float64)    {}
func (nopAudio) PlayOneShot(Clip, float64) {}

// MemoryPrefs is an in-memory Prefs, used when nothing durable is available.
type MemoryPrefs struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryPrefs creates an empty store.
func NewMemoryPrefs() *MemoryPrefs {
	return &MemoryPrefs{values: make(map[string]int)}
}

func (m *MemoryPrefs) Int(key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryPrefs) SetInt(key string, v int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = v
	return nil
}

func (m *MemoryPrefs) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Music tracks the background music volume, including the game-over fade.
type Music struct {
	audio  Audio
	base   float64
	volume float64
	fade   Fade
	on     bool
}

// NewMusic creates a music controller playing at base volume.
func NewMusic(audio Audio, base float64) *Music {
	return &Music{audio: audio, base: base}
}

// Play restores the base volume and (re)starts playback.
func (m *Music) Play() {
	m.fade.Cancel()
	m.volume = m.base
	m.audio.SetMusicVolume(m.volume)
	m.audio.PlayMusic()
	m.on = true
}

// FadeOut lowers the volume linearly to zero over duration, then stops.
func (m *Music) FadeOut(duration float64) {
	if !m.on {
		return
	}
	m.fade.Start(m.volume, 0, duration)
	if duration <= 0 {
		m.stop()
	}
}

// Update advances a fade in progress.
func (m *Music) Update(dt float64) {
	if !m.fade.Running() {
		return
	}
	done := m.fade.Advance(dt)
	m.volume = m.fade.Value()
	m.audio.SetMusicVolume(m.volume)
	if done {
		m.stop()
	}
}

func (m *Music) stop() {
	m.fade.Cancel()
	m.volume = 0
	m.audio.StopMusic()
	m.on = false
}

// Volume returns the current music volume.
func (m *Music) Volume() float64 { return m.volume }

// Playing reports whether music is on.
func (m *Music) Playing() bool { return m.on }

// Fading reports whether a fade is in progress.
func (m *Music) Fading() bool { return m.fade.Running() }
