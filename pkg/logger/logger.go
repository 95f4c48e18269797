// Package logger builds the logr.Logger every core entry point accepts
// optionally (SPEC_FULL §2): a zapr-backed logr front end, the same
// logr/zapr/zap stack as teacher pkg/logger, trimmed to what a pure
// library needs. The teacher's file-output plumbing (MkdirAll, per-name
// log files) assumes a long-running service process with a writable log
// directory; this module has no persisted state (spec §6 "Persisted
// state: None") and never opens a file on the caller's behalf.
package logger

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a named logr.Logger backed by zap: the production encoder in
// production mode, a colorized development encoder otherwise. Caller
// stacks (frames, source locations) are disabled since the core's call
// chains are shallow and a library shouldn't assume its caller wants them.
func New(name string, production bool) (logr.Logger, error) {
	var zc zap.Config
	if production {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.DisableCaller = true
	zc.DisableStacktrace = true

	z, err := zc.Build()
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(z).WithName(name), nil
}

// Discard is the logr.Logger every core Options struct defaults to when a
// caller passes the zero value: no output, no allocation per call.
func Discard() logr.Logger {
	return logr.Discard()
}
