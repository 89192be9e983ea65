package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRunCLI(t *testing.T, args []string) []byte {
	t.Helper()
	out, errOut, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("cli %v error: %v\nstderr:\n%s", args, err, string(errOut))
	}
	return out
}

type reminderEnvelope struct {
	Data struct {
		Reminder reminderView `json:"reminder"`
	} `json:"data"`
}

type listEnvelope struct {
	Data struct {
		Reminders []reminderView `json:"reminders"`
	} `json:"data"`
}

type boundsEnvelope struct {
	Data struct {
		Min string `json:"min"`
		Max string `json:"max"`
	} `json:"data"`
}

func decodeReminder(t *testing.T, raw []byte) reminderView {
	t.Helper()
	var env reminderEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal reminder envelope: %v\nstdout:\n%s", err, string(raw))
	}
	return env.Data.Reminder
}

func TestRemindersAddAndShow(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := mustRunCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "Stand-up", "--time", "9:30"})
	added := decodeReminder(t, out)
	if !strings.HasPrefix(added.ID, "rem-") {
		t.Fatalf("expected generated rem- id, got %q", added.ID)
	}
	if added.Time != 930 || added.Display != "09:30" || !added.Enabled {
		t.Fatalf("unexpected added reminder: %+v", added)
	}

	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "show", added.ID})
	shown := decodeReminder(t, out)
	if shown != added {
		t.Fatalf("show mismatch:\n add: %+v\nshow: %+v", added, shown)
	}
}

func TestRemindersListSortedByTime(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	mustRunCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "Lunch", "--time", "12:00"})
	mustRunCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "Stand-up", "--time", "9:30"})

	out := mustRunCLI(t, []string{"--dir", dir, "reminders", "list"})
	var env listEnvelope
	if err := json.Unmarshal(out, &env); err != nil {
		t.Fatalf("unmarshal list: %v\nstdout:\n%s", err, string(out))
	}
	rs := env.Data.Reminders
	if len(rs) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(rs))
	}
	if rs[0].Label != "Stand-up" || rs[1].Label != "Lunch" {
		t.Fatalf("expected time order, got %+v", rs)
	}
}

func TestRemindersSetTimeClampsIntoBounds(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := mustRunCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "Stand-up", "--time", "9:30"})
	added := decodeReminder(t, out)

	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "bounds", "--min", "6:00", "--max", "14:00"})
	var bounds boundsEnvelope
	if err := json.Unmarshal(out, &bounds); err != nil {
		t.Fatalf("unmarshal bounds: %v\nstdout:\n%s", err, string(out))
	}
	if bounds.Data.Min != "06:00" || bounds.Data.Max != "14:00" {
		t.Fatalf("unexpected bounds: %+v", bounds.Data)
	}

	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "set-time", added.ID, "23:59"})
	updated := decodeReminder(t, out)
	if updated.Time != 1400 || updated.Display != "14:00" {
		t.Fatalf("expected clamp to 14:00, got %+v", updated)
	}

	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "set-time", added.ID, "1:00"})
	updated = decodeReminder(t, out)
	if updated.Time != 600 || updated.Display != "06:00" {
		t.Fatalf("expected clamp to 06:00, got %+v", updated)
	}
}

func TestRemindersBoundsRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, errOut, err := runCLI(t, []string{"--dir", dir, "reminders", "bounds", "--min", "15:00", "--max", "9:00"})
	if err == nil {
		t.Fatalf("expected inverted bounds to fail")
	}
	if !strings.Contains(string(errOut), "after maximum") {
		t.Fatalf("unexpected stderr: %s", string(errOut))
	}
}

func TestRemindersEnableDisableRemove(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	out := mustRunCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "Stand-up", "--time", "9:30"})
	added := decodeReminder(t, out)

	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "disable", added.ID})
	if r := decodeReminder(t, out); r.Enabled {
		t.Fatalf("expected disabled, got %+v", r)
	}
	out = mustRunCLI(t, []string{"--dir", dir, "reminders", "enable", added.ID})
	if r := decodeReminder(t, out); !r.Enabled {
		t.Fatalf("expected enabled, got %+v", r)
	}

	mustRunCLI(t, []string{"--dir", dir, "reminders", "remove", added.ID})
	_, _, err := runCLI(t, []string{"--dir", dir, "reminders", "show", added.ID})
	if err == nil {
		t.Fatalf("expected show after remove to fail")
	}
}

func TestRemindersShowNotFound(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, errOut, err := runCLI(t, []string{"--dir", dir, "reminders", "show", "rem-missing"})
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	if !strings.Contains(string(errOut), "rem-missing") {
		t.Fatalf("stderr should name the id, got: %s", string(errOut))
	}
}

func TestRemindersAddRejectsMalformedTime(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	for _, bad := range []string{"", "6::30", "ab:cd", "25:00", "9:75"} {
		_, _, err := runCLI(t, []string{"--dir", dir, "reminders", "add", "--label", "X", "--time", bad})
		if err == nil {
			t.Fatalf("expected time %q to be rejected", bad)
		}
	}
}
