package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	l, err := New(Options{Level: "DEBUG", Format: "json"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug enabled")
	}

	l, err = New(Options{})
	if err != nil {
		t.Fatalf("new default: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("expected info disabled by default")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("expected warn enabled by default")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if Must(Options{Level: "loud"}) == nil {
		t.Fatal("Must must never return nil")
	}
}
