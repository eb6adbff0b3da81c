package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// levelValue is the --log-level flag.
type levelValue struct {
	level slog.Level
}

var _ pflag.Value = (*levelValue)(nil)

func (v *levelValue) String() string {
	return strings.ToLower(v.level.String())
}

func (v *levelValue) Set(s string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
	}
	v.level = level
	return nil
}

func (v *levelValue) Type() string {
	return "level"
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
