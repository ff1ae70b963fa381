package game

import (
	"math"

	"github.com/plus3/stacker/block"
	"github.com/plus3/stacker/physics"
)

// disableControl hands b over to the tower: the body falls freely in the floor
// category and the in-flight slot opens up. Calling it twice is a no-op.
func (s *Session) disableControl(b *block.Block) {
	if b.Landed {
		return
	}
	s.world.Release(b.Body, physics.CategoryFloor)
	b.Land()
	s.Tower.Add(b)
	if s.active == b {
		s.active = nil
	}
	s.State.BlockInFlight = false
}

func (s *Session) land(b *block.Block) {
	b.Position, b.Rotation = s.world.Pose(b.Body)
	s.disableControl(b)
	s.presenter.PlayCue(CueLand)
	s.emit(EventLanded, b)
	s.retargetLanding(b)
}

// retargetLanding follows a landing that happened above the framed height,
// recording a new run best on the way.
func (s *Session) retargetLanding(b *block.Block) {
	y := b.Position.Y()
	if y <= s.Camera.Reference() {
		return
	}
	if y > s.State.CurrentHighestPoint {
		s.State.CurrentHighestPoint = y
		s.State.Score = int(math.RoundToEven(y))
		s.presenter.ScoreChanged(s.State.Score)
		s.emit(EventRecord, b)
	}
	s.Camera.Retarget(y)
}

// retargetDrop reframes on the highest block other than dropped. With no such
// block the camera stays put.
func (s *Session) retargetDrop(dropped *block.Block) {
	best, ok := s.Tower.Highest(dropped)
	if !ok {
		return
	}
	s.Camera.Retarget(best.Position.Y())
}

// loseBlock removes b from play and costs a life. expected is false for a block
// that fell out while still under player control.
func (s *Session) loseBlock(cmds *Commands, b *block.Block, expected bool) {
	if !expected {
		s.disableControl(b)
	}
	s.Tower.Remove(b)
	cmds.Destroy(b)
	s.emit(EventLost, b)
	s.loseLife()
}

func (s *Session) loseLife() {
	if s.State.Status == Over || s.lifeCooldown.Armed {
		return
	}

	s.presenter.PlayCue(CueLifeLost)
	s.State.Lives--
	s.presenter.LifeIndicator(s.State.Lives, 0)
	s.emit(EventLifeLost, nil)

	if s.State.Lives <= 0 {
		s.State.Lives = 0
		s.gameOver()
	}
	s.lifeCooldown.Arm(s.clock + s.cfg.LifeLostDelay)
}

func (s *Session) gameOver() {
	s.presenter.GameOverPanel()
	s.State.Status = Over
	s.State.BlockInFlight = false

	if s.State.Score > s.State.HighScore {
		s.State.HighScore = s.State.Score
		s.store.SetInt(HighScoreKey, s.State.HighScore)
		s.presenter.HighScoreChanged(s.State.HighScore)
	}
	s.emit(EventGameOver, nil)
}
