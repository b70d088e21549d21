// Package logrus adapts a logrus entry to the client's Logger interface.
package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/efritz/deepcache"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ deepcache.Logger = LogrusLogger{}

func (l LogrusLogger) Printf(format string, args ...interface{}) {
	l.E.Debugf(format, args...)
}
