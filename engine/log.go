package engine

import (
	"fmt"
	"log/slog"
	"strings"
)

// restyLogger routes resty's printf-style logging into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error(msg(format, v))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn(msg(format, v))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(msg(format, v))
}

func msg(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
