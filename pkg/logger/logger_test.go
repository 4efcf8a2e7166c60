package logger

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestTimestamp_Format(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 7, 8, 9, 0, time.Local)

	got := Timestamp(ts)
	if got != "2024-03-05 07:08:09" {
		t.Errorf("Timestamp() = %q, want %q", got, "2024-03-05 07:08:09")
	}
}

func TestTimestamp_PadsSingleDigits(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"midnight new year", time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local), "2023-01-01 00:00:00"},
		{"end of year", time.Date(2023, time.December, 31, 23, 59, 59, 0, time.Local), "2023-12-31 23:59:59"},
		{"two digit fields", time.Date(2023, time.October, 10, 10, 10, 10, 0, time.Local), "2023-10-10 10:10:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Timestamp(tt.in); got != tt.want {
				t.Errorf("Timestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNow_Shape(t *testing.T) {
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
	if got := Now(); !re.MatchString(got) {
		t.Errorf("Now() = %q, does not match layout", got)
	}
}

func TestNew_JSONWithServiceAndComponent(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{
		Level:   DEBUG,
		Format:  JSON,
		Output:  &buf,
		Service: "test",
	})

	log.Component(ComponentHTTP).Info("hello", "key", "value")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["service"] != "test" {
		t.Errorf("expected service 'test', got %v", record["service"])
	}
	if record["component"] != ComponentHTTP {
		t.Errorf("expected component %q, got %v", ComponentHTTP, record["component"])
	}
	if record["key"] != "value" {
		t.Errorf("expected key 'value', got %v", record["key"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Format: TEXT, Output: &buf})

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %s", out)
	}
}
