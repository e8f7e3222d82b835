package tlog

import (
	"fmt"

	"github.com/ridge/must/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	for _, color := range []bool{false, true} {
		color := color
		name := fmt.Sprintf("%s;color=%t", consoleEncoderName, color)
		must.OK(zap.RegisterEncoder(name, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
			return newConsoleEncoder(cfg, color), nil
		}))
	}
}

const consoleEncoderName = "constmapper-console"

// newConsoleEncoder returns zap's console encoder with short caller names and,
// optionally, colored levels
func newConsoleEncoder(cfg zapcore.EncoderConfig, color bool) zapcore.Encoder {
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}
