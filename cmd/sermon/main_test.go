package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "sermon ") {
		t.Fatalf("output = %q, want sermon prefix", out.String())
	}
}

func TestRootRejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"extra"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRootFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "prefs", "port", "baud", "replay"} {
		if root.Flags().Lookup(name) == nil {
			t.Fatalf("missing flag --%s", name)
		}
	}
}
