package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{"error prefix", "ERR: disk full", Error},
		{"warning prefix", "WARN low battery", Warning},
		{"plain", "System OK", Normal},
		{"both keywords", "warn and error both", Error},
		{"empty", "", Normal},
		{"short warning token", "[wrn] fan speed", Warning},
		{"mixed case error", "Sensor ErRoR 42", Error},
		{"substring match", "terrain mapped", Error},
		{"whitespace", "   ", Normal},
		{"invalid utf8", "\xff\xfe warn", Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.want {
				t.Fatalf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestKindDiagnostic(t *testing.T) {
	if Normal.Diagnostic() {
		t.Fatal("Normal.Diagnostic() = true, want false")
	}
	if !Warning.Diagnostic() || !Error.Diagnostic() {
		t.Fatal("Warning/Error should be diagnostic")
	}
}

func TestKindString(t *testing.T) {
	if got := Error.String(); got != "error" {
		t.Fatalf("Error.String() = %q, want error", got)
	}
	if got := Kind(99).String(); got != "normal" {
		t.Fatalf("Kind(99).String() = %q, want normal", got)
	}
}

func TestNew(t *testing.T) {
	line := New("WRN: voltage")
	if line.Text != "WRN: voltage" || line.Kind != Warning {
		t.Fatalf("New = %#v, want warning line", line)
	}
}
