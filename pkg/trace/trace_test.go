package trace

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

// captureLog redirects the stdlib logger into a buffer for the duration of
// fn and returns what was written.
func captureLog(fn func()) string {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestContextRoundTrip(t *testing.T) {
	tracer := NewTracer("TEST", LogLevelNormal)
	ctx := WithContext(context.Background(), tracer)

	if got := FromContext(ctx); got != tracer {
		t.Error("FromContext did not return the tracer stored in the context")
	}

	// A bare context yields a usable default rather than nil.
	fallback := FromContext(context.Background())
	if fallback == nil {
		t.Fatal("FromContext returned nil for an empty context")
	}
	if fallback.prefix != "" || fallback.level != LogLevelNormal {
		t.Errorf("default tracer has prefix %q level %v", fallback.prefix, fallback.level)
	}
}

func TestVerbosity(t *testing.T) {
	tracer := NewTracer("TEST", LogLevelNormal)
	if tracer.IsVerbose() {
		t.Error("normal tracer reports verbose")
	}

	tracer.SetVerbose(true)
	if !tracer.IsVerbose() || tracer.level != LogLevelVerbose {
		t.Error("SetVerbose(true) did not raise the level")
	}

	tracer.SetVerbose(false)
	if tracer.IsVerbose() || tracer.level != LogLevelNormal {
		t.Error("SetVerbose(false) did not lower the level")
	}
}

func TestInfof(t *testing.T) {
	out := captureLog(func() {
		NewTracer("TEST", LogLevelNormal).Infof("message %d", 123)
	})
	if !strings.Contains(out, "TEST: message 123") {
		t.Errorf("Infof output = %q", out)
	}

	out = captureLog(func() {
		NewTracer("", LogLevelNormal).Infof("plain %d", 456)
	})
	if !strings.Contains(out, "plain 456") || strings.Contains(out, ": plain") {
		t.Errorf("unprefixed Infof output = %q", out)
	}
}

func TestDebugfSuppression(t *testing.T) {
	out := captureLog(func() {
		NewTracer("TEST", LogLevelNormal).Debugf("hidden")
	})
	if out != "" {
		t.Errorf("Debugf emitted %q at normal level", out)
	}

	out = captureLog(func() {
		NewTracer("TEST", LogLevelVerbose).Debugf("shown %d", 7)
	})
	if !strings.Contains(out, "TEST: shown 7") {
		t.Errorf("verbose Debugf output = %q", out)
	}
}

func TestTracefSuppression(t *testing.T) {
	out := captureLog(func() {
		NewTracer("TEST", LogLevelVerbose).Tracef("hidden")
	})
	if out != "" {
		t.Errorf("Tracef emitted %q below trace level", out)
	}

	out = captureLog(func() {
		NewTracer("TEST", LogLevelTrace).Tracef("shown")
	})
	if !strings.Contains(out, "TEST TRACE: shown") {
		t.Errorf("trace-level Tracef output = %q", out)
	}
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	out := captureLog(func() {
		NewTracer("TEST", LogLevelNormal).Error(err)
	})
	if !strings.Contains(out, "TEST ERROR: boom") {
		t.Errorf("Error output = %q", out)
	}

	out = captureLog(func() {
		NewTracer("", LogLevelNormal).Error(err)
	})
	if !strings.Contains(out, "ERROR: boom") {
		t.Errorf("unprefixed Error output = %q", out)
	}
}

func TestWithPrefix(t *testing.T) {
	parent := NewTracer("PARENT", LogLevelVerbose)
	child := parent.WithPrefix("CHILD")

	if child.prefix != "CHILD" {
		t.Errorf("child prefix = %q", child.prefix)
	}
	if child.level != LogLevelVerbose || !child.verbose {
		t.Error("child did not inherit verbosity")
	}
	if parent.prefix != "PARENT" {
		t.Error("WithPrefix mutated the parent")
	}
}
