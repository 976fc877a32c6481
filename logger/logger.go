// Package logger - zap logger construction for hosts embedding the detector.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that writes debug and info entries to stdout and
// warnings and errors to stderr, both JSON encoded.
//
// Arguments:
//   - debug: Enables debug entries and the development encoder config.
//
// Returns:
//   - *zap.Logger: The logger.
func New(debug bool) *zap.Logger {
	return zap.New(NewCore(debug, zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr)))
}

// NewCore returns the tee core behind New, writing to the given syncers.
func NewCore(debug bool, stdout, stderr zapcore.WriteSyncer) zapcore.Core {
	// warn, error and fatal level enabler
	warnErrorFatalLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level >= zapcore.WarnLevel
	})

	if debug {
		debugInfoLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
			return level == zapcore.DebugLevel || level == zapcore.InfoLevel
		})
		return zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()), stdout, debugInfoLevel),
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()), stderr, warnErrorFatalLevel),
		)
	}

	infoLevel := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return level == zapcore.InfoLevel
	})
	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), stdout, infoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), stderr, warnErrorFatalLevel),
	)
}
