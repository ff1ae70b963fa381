package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/stacker/game"
)

// overlay is the imgui window with frame timing and per-system scheduler stats.
type overlay struct {
	history []float32
	index   int
	last    time.Time
}

func newOverlay(historyFrames int) *overlay {
	return &overlay{
		history: make([]float32, historyFrames),
		last:    time.Now(),
	}
}

// tick records the wall time since the previous call in milliseconds.
func (o *overlay) tick(now time.Time) {
	o.history[o.index] = float32(now.Sub(o.last).Seconds() * 1000)
	o.index = (o.index + 1) % len(o.history)
	o.last = now
}

func (o *overlay) average() float32 {
	var sum float32
	for _, ft := range o.history {
		sum += ft
	}
	return sum / float32(len(o.history))
}

func (o *overlay) render(s *game.Session) {
	o.tick(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 40), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(340, 420), imgui.CondOnce)
	if !imgui.BeginV("Stacker Debug", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := o.average()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	imgui.PlotLinesFloatPtr("##frametime", &o.history[0], int32(len(o.history)))

	imgui.Separator()
	snap := s.Snapshot()
	imgui.Text(fmt.Sprintf("Status: %s", snap.Status))
	imgui.Text(fmt.Sprintf("Clock: %.2f s", s.Clock()))
	imgui.Text(fmt.Sprintf("Fall Speed: %.0f", snap.FallSpeed))
	imgui.Text(fmt.Sprintf("Tower: %d blocks", s.Tower.Len()))
	imgui.Text(fmt.Sprintf("Camera: %.2f (offset %.2f)", snap.Camera.Y(), snap.CameraOffset.Y()))
	if b := s.Active(); b != nil {
		imgui.Text(fmt.Sprintf("Active: #%d at (%.2f, %.2f) %.0f deg", b.ID, b.Position.X(), b.Position.Y(), b.Rotation))
	}

	fixed, frame := s.Stats()
	systemsNode("Fixed Systems", fixed)
	systemsNode("Frame Systems", frame)

	imgui.End()
}

func systemsNode(label string, stats *game.SchedulerStats) {
	if !imgui.TreeNodeStr(label) {
		return
	}
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV(label+"Table", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
		}

		imgui.EndTable()
	}
	imgui.BulletText(fmt.Sprintf("Executions: %d", stats.TotalExecutions))
	imgui.TreePop()
}
