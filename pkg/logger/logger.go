// Package logger is a thin context-aware facade over logrus.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/roguepikachu/synopsis/pkg/ctxutil"
	"github.com/sirupsen/logrus"
)

// InitLogging configures the global logger level and output format.
// Unknown levels fall back to debug; format "json" selects the JSON formatter.
func InitLogging(level, format string) {
	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	setLogLevel(level)
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func setLogLevel(level string) {
	if level == "" {
		level = "debug"
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logrus.Infof("invalid LOG_LEVEL %q, defaulting to debug", level)
		lvl = logrus.DebugLevel
	}
	logrus.SetLevel(lvl)
	logrus.Debugf("log level set to %s", lvl)
}

// Sprintf formats like fmt.Sprintf but leaves a message without verbs untouched.
func Sprintf(msg string, args ...any) string {
	if len(args) == 0 || msg == "" {
		return strings.ReplaceAll(msg, "%%", "%")
	}
	return fmt.Sprintf(msg, args...)
}

// entry builds a logrus entry carrying request-scoped identifiers from ctx.
func entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return e
	}
	if rid := ctxutil.RequestID(ctx); rid != "" {
		e = e.WithField("request_id", rid)
	}
	if cid := ctxutil.ClientID(ctx); cid != "" {
		e = e.WithField("client_id", cid)
	}
	return e
}

// With returns an entry with the given structured fields plus request identifiers.
func With(ctx context.Context, fields map[string]any) *logrus.Entry {
	return entry(ctx).WithFields(logrus.Fields(fields))
}

// WithField is With for a single key.
func WithField(ctx context.Context, key string, value any) *logrus.Entry {
	return entry(ctx).WithField(key, value)
}

func Info(ctx context.Context, msg string, args ...any) {
	entry(ctx).Info(Sprintf(msg, args...))
}

func Debug(ctx context.Context, msg string, args ...any) {
	entry(ctx).Debug(Sprintf(msg, args...))
}

func Warn(ctx context.Context, msg string, args ...any) {
	entry(ctx).Warn(Sprintf(msg, args...))
}

func Error(ctx context.Context, msg string, args ...any) {
	entry(ctx).Error(Sprintf(msg, args...))
}

func Fatal(ctx context.Context, msg string, args ...any) {
	entry(ctx).Fatal(Sprintf(msg, args...))
}
