package game

// System is one step of a session tick. Systems run in registration order and may
// mutate the session directly; block spawns and removals go through Frame.Commands.
type System interface {
	Execute(frame *Frame)
}

// Frame is handed to every system of one tick.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	Session   *Session
}

func newFrame(dt float64, session *Session, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  commands,
		Session:   session,
	}
}
