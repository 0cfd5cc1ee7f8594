// Package watch holds the configured set of supervised processes whose
// crashes warrant a notification.
package watch

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidTarget = errors.New("watch: invalid target")

// Target identifies one supervised process of interest. A bare process
// name matches that process in any group; a group-qualified target
// matches only the exact group and process pair.
type Target struct {
	Group   string
	Process string
}

// ParseTarget parses a target written as "process" or "group:process".
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	group, process, ok := strings.Cut(raw, ":")
	if !ok {
		return Target{Process: raw}, nil
	}
	if group == "" || process == "" || strings.Contains(process, ":") {
		return Target{}, fmt.Errorf("%w: %q is not process or group:process", ErrInvalidTarget, raw)
	}
	return Target{Group: group, Process: process}, nil
}

func (t Target) String() string {
	if t.Group == "" {
		return t.Process
	}
	return t.Group + ":" + t.Process
}

// Set is the configured watch list. The empty Set watches every process.
type Set struct {
	targets []Target
}

// ParseSet parses the raw target list from flags or the config file.
func ParseSet(raw []string) (Set, error) {
	var set Set
	for _, r := range raw {
		target, err := ParseTarget(r)
		if err != nil {
			return Set{}, err
		}
		set.targets = append(set.targets, target)
	}
	return set, nil
}

// Len reports how many explicit targets the set carries.
func (s Set) Len() int { return len(s.targets) }

// Empty reports whether the set watches every process.
func (s Set) Empty() bool { return len(s.targets) == 0 }

// Matches reports whether a transition of process in group is watched.
func (s Set) Matches(group, process string) bool {
	if len(s.targets) == 0 {
		return true
	}
	for _, t := range s.targets {
		if t.Process != process {
			continue
		}
		if t.Group == "" || t.Group == group {
			return true
		}
	}
	return false
}

func (s Set) String() string {
	if len(s.targets) == 0 {
		return "(all)"
	}
	names := make([]string, len(s.targets))
	for i, t := range s.targets {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}
