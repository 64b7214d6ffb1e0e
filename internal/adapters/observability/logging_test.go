package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo("prod", &buf)
	l.Info().Str("stage", "video").Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["stage"] != "video" || line["message"] != "hello" {
		t.Fatalf("unexpected fields: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Fatalf("expected timestamp field: %v", line)
	}
}

func TestNewLogger_ConsoleInDev(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo("dev", &buf)
	l.Info().Msg("hello")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestSetGlobal_ContextFallback(t *testing.T) {
	prevCtx, prevGlobal := zerolog.DefaultContextLogger, log.Logger
	t.Cleanup(func() {
		zerolog.DefaultContextLogger = prevCtx
		log.Logger = prevGlobal
	})

	var buf bytes.Buffer
	SetGlobal(NewLoggerTo("prod", &buf))

	zerolog.Ctx(context.Background()).Info().Msg("via ctx")
	if !strings.Contains(buf.String(), "via ctx") {
		t.Fatalf("expected context logger to fall back to global, got %q", buf.String())
	}
}
