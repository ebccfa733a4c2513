package timekeeper

// Command is a user request delivered to the timer loop.
type Command int

const (
	CmdQuit Command = iota
	CmdConfirm
	CmdToggleMute
	CmdVolumeDown
	CmdVolumeUp
)

func (command Command) String() string {
	switch command {
	case CmdQuit:
		return "quit"
	case CmdConfirm:
		return "confirm"
	case CmdToggleMute:
		return "toggle_mute"
	case CmdVolumeDown:
		return "volume_down"
	case CmdVolumeUp:
		return "volume_up"
	default:
		return "unknown"
	}
}

// CommandQueue carries commands from UI callbacks to the goroutine running
// the Keeper. Only that goroutine drains it.
type CommandQueue struct {
	ch chan Command
}

// NewCommandQueue creates a queue holding up to buffer pending commands.
func NewCommandQueue(buffer int) *CommandQueue {
	if buffer <= 0 {
		buffer = 1
	}
	return &CommandQueue{ch: make(chan Command, buffer)}
}

// Push enqueues a command. A quit is never dropped: when the queue is full
// the oldest pending command is discarded to make room for it.
func (queue *CommandQueue) Push(command Command) {
	for {
		select {
		case queue.ch <- command:
			return
		default:
		}
		if command != CmdQuit {
			return
		}
		select {
		case <-queue.ch:
		default:
		}
	}
}

// Poll returns the next pending command without blocking.
func (queue *CommandQueue) Poll() (Command, bool) {
	select {
	case command := <-queue.ch:
		return command, true
	default:
		return 0, false
	}
}

// C exposes the queue for callers that need to block on it.
func (queue *CommandQueue) C() <-chan Command {
	return queue.ch
}
