package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRedactEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
	}
	for _, c := range cases {
		if got := RedactEmail(c.in); got != c.want {
			t.Errorf("RedactEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLogRedactsEmailFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info("subscribe received", "email", "jane@example.com")

	var entry map[string]string
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["email"] != "ja***@example.com" {
		t.Errorf("email not redacted: %q", entry["email"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("unexpected level %q", entry["level"])
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(WARN)
	defer func() {
		SetOutput(nil)
		SetLevel(INFO)
	}()

	Debug("dropped")
	Info("dropped too")
	Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("low-level entries leaked: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("WARN entry missing: %s", out)
	}
}
