package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel(t *testing.T) {
	defer func() { Logger = Logger.Level(zerolog.InfoLevel) }()
	for level, want := range map[string]zerolog.Level{
		"trace": zerolog.TraceLevel, "debug": zerolog.DebugLevel, "": zerolog.InfoLevel,
		"warn": zerolog.WarnLevel, "silent": zerolog.Disabled,
	} {
		if err := SetLevel(level); err != nil {
			t.Fatalf("SetLevel(%q): %v", level, err)
		}
		if got := Logger.GetLevel(); got != want {
			t.Errorf("SetLevel(%q) level = %v, want %v", level, got, want)
		}
	}
	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel(loud) succeeded")
	}
}
