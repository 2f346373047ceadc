package runner

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
)

type recordingUI struct {
	scores    []int
	gameOvers [][2]int
	shows     int
	hides     int
}

func (r *recordingUI) UpdateScore(s int)            { r.scores = append(r.scores, s) }
func (r *recordingUI) ShowGameOver(final, high int) { r.gameOvers = append(r.gameOvers, [2]int{final, high}) }
func (r *recordingUI) ShowHUD()                     { r.shows++ }
func (r *recordingUI) HideHUD()                     { r.hides++ }

type recordingAudio struct {
	clips   []Clip
	plays   int
	stops   int
	volumes []float64
}

func (r *recordingAudio) PlayMusic()                    { r.plays++ }
func (r *recordingAudio) StopMusic()                    { r.stops++ }
func (r *recordingAudio) SetMusicVolume(v float64)      { r.volumes = append(r.volumes, v) }
func (r *recordingAudio) PlayOneShot(c Clip, _ float64) { r.clips = append(r.clips, c) }

func (r *recordingAudio) count(c Clip) int {
	n := 0
	for _, got := range r.clips {
		if got == c {
			n++
		}
	}
	return n
}

type sessionFixture struct {
	s     *Session
	ui    *recordingUI
	audio *recordingAudio
	prefs *MemoryPrefs
}

func newFixture(t *testing.T, skipIntro bool, tweak ...func(*config.RunnerConfig)) *sessionFixture {
	t.Helper()
	cfg := config.DefaultRunnerConfig()
	for _, f := range tweak {
		f(&cfg)
	}
	f := &sessionFixture{
		ui:    &recordingUI{},
		audio: &recordingAudio{},
		prefs: NewMemoryPrefs(),
	}
	f.s = NewSession(cfg, Env{
		UI:    f.ui,
		Audio: f.audio,
		Prefs: f.prefs,
		Log:   log.New(io.Discard),
	}, rand.New(rand.NewSource(1)), SessionOptions{SkipIntro: skipIntro})
	return f
}

func (f *sessionFixture) tick(actions ...core.Action) bool {
	return f.s.Tick(Frame{Dt: testDt, Input: input(actions...)})
}

// crash puts an obstacle right in front of the player and runs one tick.
func (f *sessionFixture) crash() {
	o := f.s.Pool().Acquire()
	p := f.s.Player().Position()
	o.Pos = Vec3{X: p.X, Z: p.Z + 0.5}
	f.tick()
}

// untilGameOver ticks until the game-over panel is up and returns how many
// ticks reported the end of the run.
func (f *sessionFixture) untilGameOver(t *testing.T) int {
	t.Helper()
	ended := 0
	for i := 0; i < 600 && f.s.Phase() != PhaseGameOver; i++ {
		if f.tick() {
			ended++
		}
	}
	for range 10 {
		if f.tick() {
			ended++
		}
	}
	return ended
}
