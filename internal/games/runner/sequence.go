package runner

// Timer counts down a fixed duration, advanced explicitly once per tick.
type Timer struct {
	duration float64
	elapsed  float64
	running  bool
}

// Start (re)starts the timer.
func (t *Timer) Start(duration float64) {
	t.duration = duration
	t.elapsed = 0
	t.running = true
}

// Advance adds dt and reports true on the tick the timer completes.
func (t *Timer) Advance(dt float64) bool {
	if !t.running {
		return false
	}
	t.elapsed += dt
	if t.elapsed >= t.duration {
		t.running = false
		return true
	}
	return false
}

// Cancel stops the timer without completing it.
func (t *Timer) Cancel() {
	t.running = false
}

func (t *Timer) Running() bool { return t.running }

// Progress returns how far the timer has run, from 0 to 1.
func (t *Timer) Progress() float64 {
	if t.duration <= 0 {
		return 1
	}
	return min(t.elapsed/t.duration, 1)
}

// Fade interpolates a value linearly towards a target over a duration.
type Fade struct {
	Timer
	from, to float64
}

// Start begins fading from one value to another.
func (f *Fade) Start(from, to, duration float64) {
	f.from, f.to = from, to
	f.Timer.Start(duration)
}

// Value returns the current interpolated value.
func (f *Fade) Value() float64 {
	return f.from + (f.to-f.from)*f.Progress()
}

// Typewriter reveals a text rune by rune at a fixed interval. The first rune
// is visible as soon as typing starts.
type Typewriter struct {
	text     []rune
	interval float64
	elapsed  float64
	shown    int
}

// NewTypewriter creates a typewriter with the given seconds per rune.
func NewTypewriter(interval float64) *Typewriter {
	return &Typewriter{interval: interval}
}

// Start begins typing text from the beginning.
func (w *Typewriter) Start(text string) {
	w.text = []rune(text)
	w.elapsed = 0
	w.shown = min(1, len(w.text))
}

// Advance moves time forward and returns the runes revealed by this call.
func (w *Typewriter) Advance(dt float64) []rune {
	if !w.Typing() {
		return nil
	}
	w.elapsed += dt
	target := len(w.text)
	if w.interval > 0 {
		target = min(len(w.text), 1+int(w.elapsed/w.interval))
	}
	if target <= w.shown {
		return nil
	}
	revealed := w.text[w.shown:target]
	w.shown = target
	return revealed
}

// Complete reveals the whole text at once.
func (w *Typewriter) Complete() {
	w.shown = len(w.text)
}

// Typing reports whether runes remain hidden.
func (w *Typewriter) Typing() bool {
	return w.shown < len(w.text)
}

// Text returns the revealed part of the text.
func (w *Typewriter) Text() string {
	return string(w.text[:w.shown])
}

// Shown returns the number of revealed runes.
func (w *Typewriter) Shown() int {
	return w.shown
}

// Len returns the length of the full text in runes.
func (w *Typewriter) Len() int {
	return len(w.text)
}
