package event

import (
	"errors"
	"testing"

	"github.com/jukanntenn/crashfeishu/internal/protocol"
	"github.com/jukanntenn/crashfeishu/internal/testutil/testlog"
)

func TestIsProcessState(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		eventName string
		want      bool
	}{
		{"PROCESS_STATE_EXITED", true},
		{"PROCESS_STATE_FATAL", true},
		{"PROCESS_STATE_STARTING", true},
		{"PROCESS_STATE", false},
		{"TICK_5", false},
		{"REMOTE_COMMUNICATION", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsProcessState(tc.eventName); got != tc.want {
			t.Fatalf("IsProcessState(%q) = %v, want %v", tc.eventName, got, tc.want)
		}
	}
}

func TestDecode(t *testing.T) {
	testlog.Start(t)

	ev, err := Decode("PROCESS_STATE_EXITED", []byte("processname:cat groupname:cat from_state:RUNNING expected:0 pid:2766"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Subtype != SubtypeExited {
		t.Fatalf("subtype = %q", ev.Subtype)
	}
	if ev.ProcessName() != "cat" || ev.GroupName() != "cat" {
		t.Fatalf("unexpected identity: %#v", ev.Fields)
	}
	if ev.FromState() != "RUNNING" || ev.PID() != "2766" {
		t.Fatalf("unexpected fields: %#v", ev.Fields)
	}
	if ev.ExpectedExit() {
		t.Fatal("expected:0 should not read as an expected exit")
	}
}

func TestDecodeExpectedExit(t *testing.T) {
	testlog.Start(t)

	ev, err := Decode("PROCESS_STATE_EXITED", []byte("processname:cat groupname:cat from_state:RUNNING expected:1 pid:1"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ev.ExpectedExit() {
		t.Fatal("expected:1 should read as an expected exit")
	}
}

func TestDecodeMissingExpected(t *testing.T) {
	testlog.Start(t)

	ev, err := Decode("PROCESS_STATE_FATAL", []byte("processname:cat groupname:cat from_state:BACKOFF"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.ExpectedExit() {
		t.Fatal("missing expected field should not read as an expected exit")
	}
	if ev.PID() != "" {
		t.Fatalf("pid = %q", ev.PID())
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	testlog.Start(t)

	_, err := Decode("PROCESS_STATE_EXITED", []byte("processname:cat junk"))
	if !errors.Is(err, protocol.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
