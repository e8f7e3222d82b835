package tlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/ridge/must/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// encoderConfig is zap's production encoder config with microsecond
// timestamps in local time
func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02T15:04:05.000000Z0700"))
	}
	return ec
}

// New creates a top-level logger
func New(config Config) *zap.Logger {
	var encoderName string
	development := true
	switch config.Format {
	case FormatJSON:
		encoderName = "json"
		development = false
	case FormatText:
		var color bool
		switch config.Color {
		case ColorYes:
			color = true
		case ColorNo:
			color = false
		case ColorAuto:
			color = config.Output == "" && term.IsTerminal(unix.Stderr)
		default:
			panic(fmt.Errorf("unexpected --log-color value: %s", config.Color))
		}

		encoderName = fmt.Sprintf("%s;color=%t", consoleEncoderName, color)
	default:
		panic(fmt.Errorf("unexpected --log-format value: %s", config.Format))
	}

	level := zapcore.InfoLevel
	if config.Verbose {
		level = zapcore.DebugLevel
	}

	output := config.Output
	if output == "" {
		output = "stderr"
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      development,
		Encoding:         encoderName,
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger := must.OK1(cfg.Build())

	if config.Name != "" {
		logger = logger.Named(config.Name)
	}

	return logger
}

// NewForTesting creates a logger for use in unit tests. Messages at all
// levels go to the test log.
func NewForTesting(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.Level(zapcore.DebugLevel)).Named(t.Name())
}
