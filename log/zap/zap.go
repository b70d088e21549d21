// Package zap adapts a zap logger to the client's Logger interface.
package zap

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/efritz/deepcache"
)

type ZapLogger struct {
	S     *zap.SugaredLogger
	Level zapcore.Level
}

var _ deepcache.Logger = ZapLogger{}

// New returns a Logger writing client messages to l at debug level.
func New(l *zap.Logger) ZapLogger {
	return ZapLogger{S: l.Sugar(), Level: zapcore.DebugLevel}
}

func (z ZapLogger) Printf(format string, args ...interface{}) {
	z.S.Logf(z.Level, format, args...)
}
