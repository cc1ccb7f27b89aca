package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/NilFoundation/suiflow/common/check"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func SetupGlobalLogger(level string) {
	check.PanicIfErr(TrySetupGlobalLevel(level))
	log.Logger = NewLogger("global")
}

func TrySetupGlobalLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// defaults to INFO
func SetLogSeverityFromEnv() {
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err != nil || lvl == zerolog.NoLevel {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(lvl)
	}
}

func makeBold(str any, disabled bool) string {
	const colorBold = 1

	if disabled {
		return fmt.Sprintf("%s", str)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", colorBold, str)
}

func makeComponentFormatter(noColor bool) zerolog.Formatter {
	return func(c any) string {
		return makeBold(fmt.Sprintf("[%s]\t", c), noColor)
	}
}

// FormatEnv selects the output format, "json" or the console default.
const FormatEnv = "LOG_FORMAT"

type options struct {
	out   io.Writer
	json  bool
	runId *uuid.UUID
}

type Option func(*options)

// WithOutput writes to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON writes one JSON object per event instead of console lines.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithRunId tags every event with the id of the workflow run.
func WithRunId(id uuid.UUID) Option {
	return func(o *options) { o.runId = &id }
}

func consoleWriter(out io.Writer, noColor bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			FieldComponent,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude:    []string{FieldComponent},
		FormatFieldValue: makeComponentFormatter(noColor),
		NoColor:          noColor,
	}
}

// NewLogger logs to stderr as console lines, or JSON when LOG_FORMAT=json.
// Colors are off when NO_COLOR is set or stderr is not a terminal.
func NewLogger(component string, opts ...Option) zerolog.Logger {
	o := options{
		out:  os.Stderr,
		json: strings.EqualFold(os.Getenv(FormatEnv), "json"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var w io.Writer = o.out
	if !o.json {
		noColor := os.Getenv("NO_COLOR") != "" || !isTerminal(o.out)
		w = consoleWriter(o.out, noColor)
	}

	ctx := zerolog.New(w).
		With().
		Str(FieldComponent, component)
	if o.runId != nil {
		ctx = ctx.Stringer(FieldRunId, o.runId)
	}
	return ctx.
		Caller().
		Timestamp().
		Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
