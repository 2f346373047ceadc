package runner

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
)

// Prefs keys.
const (
	KeyHighScore    = "HighScore"
	KeyTimesPlayed  = "TimesPlayed"
	KeyHasSeenStory = "HasSeenStory"
)

// LineStyle marks how a story line is emphasised.
type LineStyle int

const (
	StylePlain LineStyle = iota
	StyleStrong
	StyleHint
)

// Line is one line of a story panel.
type Line struct {
	Text  string
	Style LineStyle
}

// Segment is one panel of the intro story.
type Segment []Line

// Text returns the panel text with lines joined by newlines.
func (s Segment) Text() string {
	parts := make([]string, len(s))
	for i, l := range s {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

func plain(t string) Line  { return Line{Text: t} }
func strong(t string) Line { return Line{Text: t, Style: StyleStrong} }
func hint(t string) Line   { return Line{Text: t, Style: StyleHint} }

var blank = plain("")

var firstTimeStory = []Segment{
	{
		plain("In a world where cities have become endless concrete labyrinths..."), blank,
		strong("You are ARIA"), blank,
		plain("One of the last free runners in Neo-Metro City."), blank,
		hint("[Click anywhere to continue]"),
	},
	{
		plain("The TileManager AI took control of city planning years ago."), blank,
		plain("The city now extends forever, with roads and buildings materializing endlessly ahead."), blank,
		hint("[Click to continue]"),
	},
	{
		plain("The ObstacleSpawner protocol constantly tests citizens."), blank,
		plain("Those who navigate the urban maze earn their freedom."), blank,
		plain("Those who stumble must start again."), blank,
		hint("[Click to continue]"),
	},
	{
		strong("RUN. SURVIVE. SCORE."), blank,
		plain("How far can you run before the city claims you?"), blank,
		plain("Prove you're the greatest runner Neo-Metro has ever seen."), blank,
		hint("[Click to start]"),
	},
}

var returningStories = [][]Segment{
	{
		{plain("Back for another run, ARIA?"), blank, plain("The city missed you..."), blank, hint("[Click to continue]")},
		{plain("Time to show these streets what you're made of!"), blank, hint("[Click to start]")},
	},
	{
		{plain("Every run makes you stronger."), plain("Every fall makes you wiser."), blank, hint("[Click to continue]")},
		{plain("Ready to break your record?"), blank, hint("[Click to start]")},
	},
	{
		{plain("The Neo-Metro leaderboards await your return..."), blank, hint("[Click to continue]")},
		{plain("Make them remember your name!"), blank, hint("[Click to start]")},
	},
	{
		{plain("The streets are calling, runner..."), blank, plain("They're hungry for speed."), blank, hint("[Click to continue]")},
		{plain("Show them what you've got!"), blank, hint("[Click to start]")},
	},
}

// SelectStory picks the intro for this session and records the visit:
// first-time players get the full story and the seen flag is set, returning
// players get one short story at random. The play count is bumped either way.
func SelectStory(prefs Prefs, rng *rand.Rand, logger *log.Logger) (story []Segment, firstTime bool) {
	seen, err := prefs.Int(KeyHasSeenStory)
	if err != nil {
		logger.Warn("reading story flag", "error", err)
	}

	if seen == 0 {
		story, firstTime = firstTimeStory, true
		if err := prefs.SetInt(KeyHasSeenStory, 1); err != nil {
			logger.Warn("saving story flag", "error", err)
		}
	} else {
		story = returningStories[rng.Intn(len(returningStories))]
	}

	RecordPlay(prefs, logger)
	return story, firstTime
}

// RecordPlay increments the persisted play count.
func RecordPlay(prefs Prefs, logger *log.Logger) {
	played, err := prefs.Int(KeyTimesPlayed)
	if err != nil {
		logger.Warn("reading play count", "error", err)
	}
	if err := prefs.SetInt(KeyTimesPlayed, played+1); err != nil {
		logger.Warn("saving play count", "error", err)
	}
}

// ResetStory forgets that the story was seen and clears the play count, so
// the next session shows the first-time story again.
func ResetStory(prefs Prefs) error {
	return prefs.Delete(KeyHasSeenStory, KeyTimesPlayed)
}

// Intro plays the story panels with a typewriter reveal.
type Intro struct {
	segments []Segment
	index    int
	writer   *Typewriter
	audio    Audio
	volume   float64
	done     bool
}

// NewIntro starts the first panel of segments. An empty story is done
// immediately.
func NewIntro(segments []Segment, interval float64, audio Audio, volume float64) *Intro {
	in := &Intro{
		segments: segments,
		writer:   NewTypewriter(interval),
		audio:    audio,
		volume:   volume,
	}
	if len(segments) == 0 {
		in.done = true
		return in
	}
	in.show()
	return in
}

func (in *Intro) show() {
	in.writer.Start(in.segments[in.index].Text())
	in.ticked(in.writer.text[:in.writer.Shown()])
}

// Update advances the typewriter. Every revealed visible rune plays the
// typing sound.
func (in *Intro) Update(dt float64) {
	if in.done {
		return
	}
	in.ticked(in.writer.Advance(dt))
}

func (in *Intro) ticked(revealed []rune) {
	for _, r := range revealed {
		if !unicode.IsSpace(r) {
			in.audio.PlayOneShot(ClipTyping, in.volume)
		}
	}
}

// Click handles a panel click. While a panel is still typing it is shown in
// full; otherwise the next panel starts. It reports true once the last panel
// has been dismissed.
func (in *Intro) Click() bool {
	if in.done {
		return true
	}
	if in.writer.Typing() {
		in.writer.Complete()
		return false
	}
	in.index++
	if in.index >= len(in.segments) {
		in.done = true
		return true
	}
	in.show()
	return false
}

// Done reports whether the intro has finished.
func (in *Intro) Done() bool { return in.done }

// Typing reports whether the current panel is still being revealed.
func (in *Intro) Typing() bool { return !in.done && in.writer.Typing() }

// Panel returns the index of the current panel and the number of panels.
func (in *Intro) Panel() (int, int) { return in.index, len(in.segments) }

// Lines returns the revealed part of the current panel with line styles.
func (in *Intro) Lines() []Line {
	if in.done {
		return nil
	}
	seg := in.segments[in.index]
	shown := strings.Split(in.writer.Text(), "\n")
	out := make([]Line, 0, len(shown))
	for i, t := range shown {
		if i >= len(seg) {
			break
		}
		out = append(out, Line{Text: t, Style: seg[i].Style})
	}
	return out
}
