package logging

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/thoreinstein/ruleranger/internal/errors"
)

// ColorMode selects when ANSI colors are written.
type ColorMode string

// Color modes accepted by --color.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Newf("unknown color mode %q (want auto, always or never)", s)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor returns true if the given writer supports ANSI color codes
// in auto mode.
func SupportsColor(w io.Writer) bool {
	return ColorEnabled(w, ColorAuto)
}

// ColorEnabled decides whether output to w is colored under mode.
func ColorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return autoColor(IsTTY(w))
}

// autoColor applies the environment conventions: NO_COLOR wins, then
// FORCE_COLOR, then TERM=dumb, then TTY detection.
func autoColor(isTTY bool) bool {
	// https://no-color.org
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if v, ok := os.LookupEnv("FORCE_COLOR"); ok && v != "0" && v != "false" {
		return true
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
