package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("lookup failed")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("creature", "Pikachu"), "creature", "Pikachu"},
		{"Int", Int("attack", 55), "attack", 55},
		{"Uint64", Uint64("battles", 12345678901234567890), "battles", uint64(12345678901234567890)},
		{"Float64", Float64("ratio", 0.5), "ratio", 0.5},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewLogger tests the component-scoped logger constructor.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "orchestrator")

	logger.Info("battle resolved", String("winner", "Pikachu"))
	output := buf.String()

	for _, want := range []string{"orchestrator", "battle resolved", "Pikachu", `"level":"info"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	if NewDefaultLogger() == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Error tests the Error method.
func TestZerologAdapter_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fields   []Field
		contains []string
	}{
		{
			name:     "with error",
			err:      errors.New("connection refused"),
			contains: []string{"fetch failed", "connection refused", "error"},
		},
		{
			name:     "with nil error",
			err:      nil,
			contains: []string{"fetch failed", "error"},
		},
		{
			name:     "with error and fields",
			err:      errors.New("timeout"),
			fields:   []Field{String("creature", "Mewtwo"), Int("status", 502)},
			contains: []string{"fetch failed", "timeout", "Mewtwo", "502"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Error("fetch failed", tt.err, tt.fields...)

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests the Debug method.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("state change", String("state", "fetching"))

	output := buf.String()
	if !strings.Contains(output, "state change") || !strings.Contains(output, `"level":"debug"`) {
		t.Errorf("unexpected debug output: %s", output)
	}
}

// TestZerologAdapter_PrintfPrintln tests the printf-style helpers.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("listening on %s", ":8080")
	logger.Println("shutting", "down")

	output := buf.String()
	if !strings.Contains(output, "listening on :8080") {
		t.Errorf("Printf should format message, got: %s", output)
	}
	if !strings.Contains(output, "shutting down") {
		t.Errorf("Println should join arguments, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"duration field", Field{Key: "took", Value: 1500 * time.Millisecond}, "took"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ Attack int }{Attack: 7}}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLogger(&buf, "test").Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestParseLevel tests global level selection.
func TestParseLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	if err := ParseLevel("WARN"); err != nil {
		t.Fatalf("ParseLevel(WARN) error: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("global level = %v, want warn", zerolog.GlobalLevel())
	}
	if err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
	if err := ParseLevel(""); err != nil {
		t.Errorf("ParseLevel(\"\") should be a no-op, got %v", err)
	}
}

// TestStdLoggerAdapter tests the StdLoggerAdapter methods.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *StdLoggerAdapter)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l *StdLoggerAdapter) { l.Info("battle", String("first", "Pikachu")) },
			contains: []string{"[INFO]", "battle", "first=Pikachu"},
		},
		{
			name:     "error",
			log:      func(l *StdLoggerAdapter) { l.Error("failed", errors.New("boom"), Int("status", 404)) },
			contains: []string{"[ERROR]", "failed", "boom", "status=404"},
		},
		{
			name:     "debug",
			log:      func(l *StdLoggerAdapter) { l.Debug("trace") },
			contains: []string{"[DEBUG]", "trace"},
		},
		{
			name:     "printf",
			log:      func(l *StdLoggerAdapter) { l.Printf("value is %d", 123) },
			contains: []string{"value is 123"},
		},
		{
			name:     "println",
			log:      func(l *StdLoggerAdapter) { l.Println("a", "b") },
			contains: []string{"a b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestLoggerInterface verifies all adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = NewLogger(&buf, "test")
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = NopLogger{}
}
