package game

// Cue names one of the fixed sound effects.
type Cue int

const (
	CueLand Cue = iota
	CueLifeLost
	CueSelect
)

func (c Cue) String() string {
	switch c {
	case CueLand:
		return "land"
	case CueLifeLost:
		return "life-lost"
	case CueSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Input is what the player did since the previous sample.
type Input struct {
	Axis        float64
	RotateLeft  bool
	RotateRight bool
	Pause       bool
}

// InputSource is polled once per Advance.
type InputSource interface {
	Sample() Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() Input

func (f InputFunc) Sample() Input { return f() }

// Presenter receives one-way notifications for the HUD and speakers. The session
// never reads anything back from it.
type Presenter interface {
	ScoreChanged(score int)
	HighScoreChanged(highScore int)
	// LifeIndicator sets the fill of the indicator at index (0 = first life).
	LifeIndicator(index int, fill float64)
	PausePanel(visible bool)
	GameOverPanel()
	PlayCue(cue Cue)
}

// Store persists integers across sessions.
type Store interface {
	GetInt(key string, def int) int
	SetInt(key string, value int)
}

// Navigator performs scene transitions on behalf of the session.
type Navigator interface {
	NewRun()
	Quit()
}

// HighScoreKey is the Store key of the all-time best score.
const HighScoreKey = "Highscore"

type nopPresenter struct{}

func (nopPresenter) ScoreChanged(int)           {}
func (nopPresenter) HighScoreChanged(int)       {}
func (nopPresenter) LifeIndicator(int, float64) {}
func (nopPresenter) PausePanel(bool)            {}
func (nopPresenter) GameOverPanel()             {}
func (nopPresenter) PlayCue(Cue)                {}

type nopNavigator struct{}

func (nopNavigator) NewRun() {}
func (nopNavigator) Quit()   {}

type mapStore map[string]int

func (m mapStore) GetInt(key string, def int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m mapStore) SetInt(key string, value int) {
	m[key] = value
}
