package logger

import (
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

type Zerolog struct {
	zerolog.Logger
}

type ZeroConfig struct {
	Level             string
	TimeFieldFormat   string
	PrettyPrint       bool
	DisableSampling   bool
	RedirectStdLogger bool
	ErrorStack        bool
	ShowCaller        bool
}

const (
	defaultLevel = zerolog.InfoLevel
)

func NewDefaultZerolog() *Zerolog {
	return NewZerolog(ZeroConfig{
		Level:           defaultLevel.String(),
		TimeFieldFormat: time.RFC3339,
		PrettyPrint:     true,
	})
}

// NewNopZerolog returns a logger that discards everything.
func NewNopZerolog() *Zerolog {
	return &Zerolog{Logger: zerolog.Nop()}
}

func NewZerolog(cfg ZeroConfig) *Zerolog {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = defaultLevel
	}

	if len(cfg.TimeFieldFormat) != 0 {
		zerolog.TimeFieldFormat = cfg.TimeFieldFormat
	}
	zerolog.DisableSampling(cfg.DisableSampling)
	if cfg.ErrorStack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	}

	var out io.Writer = os.Stdout
	if cfg.PrettyPrint {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: cfg.TimeFieldFormat}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ShowCaller {
		ctx = ctx.Caller()
	}

	log := &Zerolog{Logger: ctx.Logger()}

	if cfg.RedirectStdLogger {
		stdlog.SetFlags(0)
		stdlog.SetOutput(log.Logger)
	}

	return log
}

// WithField returns a child logger carrying the given string field.
func (l *Zerolog) WithField(key, value string) *Zerolog {
	return &Zerolog{Logger: l.Logger.With().Str(key, value).Logger()}
}
