package event

import (
	"fmt"

	"github.com/jukanntenn/crashfeishu/internal/watch"
)

// Action names what the listener does with a classified transition.
type Action string

const (
	ActionIgnore Action = "ignore"
	ActionNotify Action = "notify"
)

// Decision is the classifier outcome for one transition. Message is set
// only when Action is ActionNotify.
type Decision struct {
	Action  Action
	Message string
}

// Classify decides whether a transition describes the unexpected death of
// a watched process. EXITED counts when the supervisor did not expect the
// exit, FATAL always counts. A payload without the expected field is
// treated as an unexpected exit.
func Classify(ev Event, targets watch.Set) Decision {
	switch ev.Subtype {
	case SubtypeExited:
		if ev.ExpectedExit() {
			return Decision{Action: ActionIgnore}
		}
	case SubtypeFatal:
	default:
		return Decision{Action: ActionIgnore}
	}
	if !targets.Matches(ev.GroupName(), ev.ProcessName()) {
		return Decision{Action: ActionIgnore}
	}
	return Decision{Action: ActionNotify, Message: crashMessage(ev)}
}

func crashMessage(ev Event) string {
	var pid string
	if ev.PID() != "" {
		pid = fmt.Sprintf(" (pid %s)", ev.PID())
	}
	if ev.Subtype == SubtypeFatal {
		return fmt.Sprintf("Process %s in group %s entered the FATAL state%s from state %s",
			ev.ProcessName(), ev.GroupName(), pid, ev.FromState())
	}
	return fmt.Sprintf("Process %s in group %s exited unexpectedly%s from state %s",
		ev.ProcessName(), ev.GroupName(), pid, ev.FromState())
}
