package logger

import (
	"testing"

	"github.com/gofiber/fiber/v2/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.LevelDebug,
		" DEBUG ": log.LevelDebug,
		"info":    log.LevelInfo,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
		"":        log.LevelInfo,
		"verbose": log.LevelInfo,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
