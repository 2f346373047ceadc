package gui

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/neometro/internal/games/runner"
)

const (
	sampleRate    = 44100
	bytesPerFrame = 4 // 16-bit little-endian stereo
)

// ToneAudio implements runner.Audio with synthesized tones: a looping bass
// arpeggio for music and short sweeps for the one-shot clips.
type ToneAudio struct {
	ctx     *audio.Context
	music   *audio.Player
	clips   map[runner.Clip][]byte
	playing []*audio.Player // one-shots still sounding
	log     *log.Logger
}

var _ runner.Audio = (*ToneAudio)(nil)

// NewToneAudio renders every sound up front. ctx must be the process-wide
// audio context created with sampleRate.
func NewToneAudio(ctx *audio.Context, logger *log.Logger) (*ToneAudio, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	song := synthMusic()
	music, err := ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(song), int64(len(song))))
	if err != nil {
		return nil, err
	}

	return &ToneAudio{
		ctx:   ctx,
		music: music,
		clips: map[runner.Clip][]byte{
			runner.ClipJump:     tone(440, 880, 0.15, 8, 0.5),
			runner.ClipGameOver: tone(330, 90, 0.7, 3, 0.7),
			runner.ClipTyping:   tone(1400, 1300, 0.03, 60, 0.25),
		},
		log: logger,
	}, nil
}

// NewAudioContext creates the process-wide context at the synth's rate.
func NewAudioContext() *audio.Context {
	return audio.NewContext(sampleRate)
}

func (a *ToneAudio) PlayMusic() {
	if err := a.music.SetPosition(0); err != nil {
		a.log.Warn("rewinding music", "error", err)
	}
	a.music.Play()
}

func (a *ToneAudio) StopMusic() {
	a.music.Pause()
}

func (a *ToneAudio) SetMusicVolume(v float64) {
	a.music.SetVolume(v)
}

func (a *ToneAudio) PlayOneShot(c runner.Clip, volume float64) {
	data, ok := a.clips[c]
	if !ok {
		a.log.Warn("unknown clip", "clip", c)
		return
	}

	// Players must stay referenced until they finish.
	live := a.playing[:0]
	for _, p := range a.playing {
		if p.IsPlaying() {
			live = append(live, p)
		}
	}

	p := a.ctx.NewPlayerFromBytes(data)
	p.SetVolume(volume)
	p.Play()
	a.playing = append(live, p)
}

// MusicVolume returns the current music volume.
func (a *ToneAudio) MusicVolume() float64 {
	return a.music.Volume()
}

// tone renders a sine sweep from f0 to f1 Hz lasting dur seconds, with an
// exponential decay envelope, as 16-bit stereo PCM.
func tone(f0, f1, dur, decay, gain float64) []byte {
	frames := int(dur * sampleRate)
	buf := make([]byte, frames*bytesPerFrame)
	phase := 0.0
	for i := range frames {
		t := float64(i) / sampleRate
		freq := f0 + (f1-f0)*t/dur
		phase += 2 * math.Pi * freq / sampleRate
		v := math.Sin(phase) * math.Exp(-decay*t) * gain
		putFrame(buf, i, v)
	}
	return buf
}

// arpeggio is the music loop in semitones above A1 (55 Hz), one note per
// eighth at 120 bpm.
var arpeggio = []int{0, 7, 12, 7, 3, 10, 15, 10, 5, 12, 17, 12, 7, 14, 19, 14}

const noteLength = 0.25

// synthMusic renders one pass of the arpeggio as a soft square-ish bass.
func synthMusic() []byte {
	frames := int(noteLength * sampleRate)
	buf := make([]byte, len(arpeggio)*frames*bytesPerFrame)
	for n, semi := range arpeggio {
		freq := 55 * math.Pow(2, float64(semi)/12)
		for i := range frames {
			t := float64(i) / sampleRate
			w := 2 * math.Pi * freq * t
			v := (math.Sin(w) + math.Sin(3*w)/3 + math.Sin(5*w)/5) * 0.35
			// Short attack and release keep note boundaries click free.
			env := math.Min(1, math.Min(t/0.005, (noteLength-t)/0.02))
			putFrame(buf, n*frames+i, v*env)
		}
	}
	return buf
}

func putFrame(buf []byte, frame int, v float64) {
	v = math.Max(-1, math.Min(1, v))
	s := uint16(int16(v * math.MaxInt16))
	off := frame * bytesPerFrame
	binary.LittleEndian.PutUint16(buf[off:], s)
	binary.LittleEndian.PutUint16(buf[off+2:], s)
}
