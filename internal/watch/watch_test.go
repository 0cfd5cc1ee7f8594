package watch

import (
	"errors"
	"testing"

	"github.com/jukanntenn/crashfeishu/internal/testutil/testlog"
)

func TestParseTarget(t *testing.T) {
	testlog.Start(t)

	target, err := ParseTarget("worker")
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	if target.Group != "" || target.Process != "worker" {
		t.Fatalf("unexpected target: %#v", target)
	}

	target, err = ParseTarget("app:worker")
	if err != nil {
		t.Fatalf("parse target: %v", err)
	}
	if target.Group != "app" || target.Process != "worker" {
		t.Fatalf("unexpected target: %#v", target)
	}
}

func TestParseTargetInvalid(t *testing.T) {
	testlog.Start(t)

	for _, raw := range []string{"", "  ", ":worker", "app:", "a:b:c"} {
		if _, err := ParseTarget(raw); !errors.Is(err, ErrInvalidTarget) {
			t.Fatalf("target %q: expected ErrInvalidTarget, got %v", raw, err)
		}
	}
}

func TestTargetString(t *testing.T) {
	testlog.Start(t)

	for _, raw := range []string{"worker", "app:worker"} {
		target, err := ParseTarget(raw)
		if err != nil {
			t.Fatalf("parse target: %v", err)
		}
		if target.String() != raw {
			t.Fatalf("String() = %q, want %q", target.String(), raw)
		}
	}
}

func TestEmptySetMatchesEverything(t *testing.T) {
	testlog.Start(t)

	var set Set
	if !set.Empty() {
		t.Fatal("zero set should be empty")
	}
	if !set.Matches("cat", "cat") {
		t.Fatal("empty set should match any process")
	}
	if !set.Matches("app", "worker") {
		t.Fatal("empty set should match any process")
	}
}

func TestBareTargetMatchesAnyGroup(t *testing.T) {
	testlog.Start(t)

	set, err := ParseSet([]string{"worker"})
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if !set.Matches("app", "worker") {
		t.Fatal("bare target should match process in any group")
	}
	if !set.Matches("worker", "worker") {
		t.Fatal("bare target should match process in its own group")
	}
	if set.Matches("app", "cat") {
		t.Fatal("bare target should not match a different process")
	}
}

func TestQualifiedTargetMatchesExactPair(t *testing.T) {
	testlog.Start(t)

	set, err := ParseSet([]string{"app:worker"})
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if !set.Matches("app", "worker") {
		t.Fatal("qualified target should match its exact pair")
	}
	if set.Matches("other", "worker") {
		t.Fatal("qualified target should not match another group")
	}
	if set.Matches("app", "cat") {
		t.Fatal("qualified target should not match another process")
	}
}

func TestSetMultipleTargets(t *testing.T) {
	testlog.Start(t)

	set, err := ParseSet([]string{"cat", "app:worker"})
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("len = %d", set.Len())
	}
	if !set.Matches("zoo", "cat") {
		t.Fatal("expected bare match")
	}
	if !set.Matches("app", "worker") {
		t.Fatal("expected qualified match")
	}
	if set.Matches("app", "dog") {
		t.Fatal("unexpected match")
	}
}

func TestSetString(t *testing.T) {
	testlog.Start(t)

	var empty Set
	if empty.String() != "(all)" {
		t.Fatalf("String() = %q", empty.String())
	}
	set, err := ParseSet([]string{"cat", "app:worker"})
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if set.String() != "cat,app:worker" {
		t.Fatalf("String() = %q", set.String())
	}
}
