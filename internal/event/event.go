// Package event decodes process state transitions and decides which of
// them describe a crash worth reporting.
package event

import (
	"strings"

	"github.com/jukanntenn/crashfeishu/internal/protocol"
)

const processStatePrefix = "PROCESS_STATE_"

// Subtypes of process state events as the supervisor names them.
const (
	SubtypeStarting   = "STARTING"
	SubtypeRunning    = "RUNNING"
	SubtypeBackoff    = "BACKOFF"
	SubtypeStopping   = "STOPPING"
	SubtypeExited     = "EXITED"
	SubtypeStopped    = "STOPPED"
	SubtypeFatal      = "FATAL"
	SubtypeSpawnError = "SPAWN_ERROR"
	SubtypeUnknown    = "UNKNOWN"
)

// Event is one decoded process state transition.
type Event struct {
	// Subtype is the suffix of the event name, EXITED for
	// PROCESS_STATE_EXITED.
	Subtype string

	// Fields holds the decoded payload pairs.
	Fields map[string]string
}

// IsProcessState reports whether eventName names a process state
// transition. Other event classes carry no crash information.
func IsProcessState(eventName string) bool {
	return strings.HasPrefix(eventName, processStatePrefix)
}

// Decode parses the payload of a process state event. The caller checks
// IsProcessState first.
func Decode(eventName string, payload []byte) (Event, error) {
	fields, err := protocol.DecodePayload(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Subtype: strings.TrimPrefix(eventName, processStatePrefix),
		Fields:  fields,
	}, nil
}

// ProcessName is the name of the process that transitioned.
func (e Event) ProcessName() string { return e.Fields["processname"] }

// GroupName is the supervisor group of the process.
func (e Event) GroupName() string { return e.Fields["groupname"] }

// FromState is the state the process left.
func (e Event) FromState() string { return e.Fields["from_state"] }

// PID is the process id as the supervisor reported it, possibly empty.
func (e Event) PID() string { return e.Fields["pid"] }

// ExpectedExit reports whether the supervisor marked the exit as expected.
func (e Event) ExpectedExit() bool { return e.Fields["expected"] == "1" }
