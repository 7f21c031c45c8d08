package canopy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// captureLog routes the package logger into a buffer at debug level.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logger
	SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	t.Cleanup(func() { logger = prev })
	return &buf
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	prev := Logger()
	SetLogger(nil)
	if Logger() != prev {
		t.Error("SetLogger(nil) replaced the logger")
	}
}

func TestDebugFrameStatsLogged(t *testing.T) {
	buf := captureLog(t)
	s, _, _, _, _ := buildTree(t)
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })

	s.Update(0)
	out := buf.String()
	if !strings.Contains(out, "frame") || !strings.Contains(out, "nodes=4") {
		t.Errorf("frame stats not logged: %q", out)
	}
}

func TestDebugFrameStatsSilentWithoutDebug(t *testing.T) {
	buf := captureLog(t)
	s, _, _, _, _ := buildTree(t)
	s.Update(0)
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %q", buf.String())
	}
}

func TestDebugChildCountWarning(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })

	parent := s.AddNode(nil)
	for range debugMaxChildCount + 1 {
		s.AddNode(parent)
	}
	if !strings.Contains(buf.String(), "too many children") {
		t.Error("expected child count warning")
	}
}

func TestDebugTreeDepthWarning(t *testing.T) {
	buf := captureLog(t)
	s := NewScene()
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })

	n := s.Root()
	for range debugMaxTreeDepth + 1 {
		n = s.AddNode(n)
	}
	if !strings.Contains(buf.String(), "tree depth") {
		t.Error("expected tree depth warning")
	}
}

func TestDebugUnknownRegionWarning(t *testing.T) {
	buf := captureLog(t)
	withDebug(t)
	NewAtlas(1, 8, 8).Region(3)
	if !strings.Contains(buf.String(), "region not found") {
		t.Error("expected region warning")
	}
}

func TestDebugAssert(t *testing.T) {
	debugAssert(false, "ignored outside debug mode")
	withDebug(t)
	expectPanic(t, "debugAssert", func() { debugAssert(false, "boom") })
}
