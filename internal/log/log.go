package log

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format is the encoding used for log lines
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configures the logger
type Options struct {
	Debug  bool
	Format Format
}

// NewDefaultOptions returns console logging at info level
func NewDefaultOptions() *Options {
	return &Options{
		Format: FormatConsole,
	}
}

// AddPFlags registers the logging flags on fs
func (o *Options) AddPFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Debug, "log-debug", o.Debug, "Enables more verbose logging")
	fs.Var(&formatValue{format: &o.Format}, "log-format", "Log format, one of console or json")
}

// Validate checks the options
func (o *Options) Validate() error {
	switch o.Format {
	case FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid log format %q, must be one of %s or %s", o.Format, FormatConsole, FormatJSON)
	}
}

// NewFromOptions builds a logger writing to stderr, stdout is reserved for
// command output
func NewFromOptions(o *Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if o.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if o.Format == FormatJSON {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	return zap.New(core, zap.AddCaller())
}

type formatValue struct {
	format *Format
}

func (f *formatValue) String() string {
	if f.format == nil {
		return ""
	}
	return string(*f.format)
}

func (f *formatValue) Set(s string) error {
	switch Format(s) {
	case FormatConsole, FormatJSON:
		*f.format = Format(s)
		return nil
	default:
		return fmt.Errorf("must be one of %s or %s", FormatConsole, FormatJSON)
	}
}

func (f *formatValue) Type() string {
	return "string"
}
