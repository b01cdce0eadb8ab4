package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestAssembler_PartialLineReassembly(t *testing.T) {
	var a Assembler
	if got := a.Feed([]byte("Data mess")); len(got) != 0 {
		t.Fatalf("Feed(partial) = %q, want no lines", got)
	}
	if a.Pending() != len("Data mess") {
		t.Fatalf("Pending = %d, want %d", a.Pending(), len("Data mess"))
	}
	got := a.Feed([]byte("age 1\nData message 2\n"))
	want := []string{"Data message 1", "Data message 2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Feed = %q, want %q", got, want)
	}
	if a.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", a.Pending())
	}
}

func TestAssembler_Feed(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []string
	}{
		{"crlf", []string{"one\r\ntwo\r\n"}, []string{"one", "two"}},
		{"cr split from lf", []string{"one\r", "\n"}, []string{"one"}},
		{"empty lines", []string{"\n\n"}, []string{"", ""}},
		{"byte at a time", []string{"a", "b", "\n", "c"}, []string{"ab"}},
		{"invalid utf8", []string{"bad \xff byte\n"}, []string{"bad � byte"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Assembler
			var got []string
			for _, chunk := range tt.chunks {
				got = append(got, a.Feed([]byte(chunk))...)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembler_Flush(t *testing.T) {
	var a Assembler
	if _, ok := a.Flush(); ok {
		t.Fatal("Flush on empty assembler returned ok")
	}
	a.Feed([]byte("tail"))
	got, ok := a.Flush()
	if !ok || got != "tail" {
		t.Fatalf("Flush = (%q, %v), want (tail, true)", got, ok)
	}
	if a.Pending() != 0 {
		t.Fatalf("Pending after Flush = %d, want 0", a.Pending())
	}
}

func TestAssembler_OversizedPartialIsEmitted(t *testing.T) {
	var a Assembler
	long := strings.Repeat("x", MaxLineBytes)
	got := a.Feed([]byte(long))
	if len(got) != 1 || len(got[0]) != MaxLineBytes {
		t.Fatalf("Feed(oversized) returned %d lines, want 1 of %d bytes", len(got), MaxLineBytes)
	}
	if a.Pending() != 0 {
		t.Fatalf("Pending = %d, want 0", a.Pending())
	}
}
