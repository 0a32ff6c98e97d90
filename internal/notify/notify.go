package notify

// Level flags how a notification should be rendered.
type Level int

const (
	Info Level = iota
	Warn
)

// Notifier is a transient-message sink. Engines call it fire-and-forget and
// never read anything back.
type Notifier interface {
	Notify(level Level, message string)
}

// Func adapts a plain function to a Notifier.
type Func func(level Level, message string)

func (f Func) Notify(level Level, message string) { f(level, message) }

// Nop discards all notifications.
var Nop = Func(func(Level, string) {})

// Recorder captures notifications for tests.
type Recorder struct {
	Notices []Notice
}

type Notice struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(level Level, message string) {
	r.Notices = append(r.Notices, Notice{Level: level, Message: message})
}
