package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/zerr"

	"github.com/retortlabs/retort/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	l, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("expected concrete *logger.Logger")
	}

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("provisioning py27")
	l.Warn("skipping entry en-US")
	l.Error(zerr.New("pip exited 1"))

	out := buf.String()
	for _, want := range []string{
		"level=INFO",
		"provisioning py27",
		"level=WARN",
		"skipping entry en-US",
		"level=ERROR",
		"pip exited 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogger_SetOutputRedirects(t *testing.T) {
	l, ok := logger.New().(*logger.Logger)
	if !ok {
		t.Fatal("expected concrete *logger.Logger")
	}

	var first, second bytes.Buffer
	l.SetOutput(&first)
	l.Info("one")
	l.SetOutput(&second)
	l.Info("two")

	if strings.Contains(first.String(), "two") {
		t.Error("expected second message to go to the new writer only")
	}
	if !strings.Contains(second.String(), "two") {
		t.Error("expected second writer to receive the message")
	}
}
