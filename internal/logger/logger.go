package logger

import (
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	*logrus.Entry
}

var (
	baseOnce sync.Once
	base     *logrus.Logger
)

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	configure(l, os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))
	return l
}

func configure(l *logrus.Logger, env, level string) {
	// Local env = pretty console; others = JSON
	if env == "" || env == "local" {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	switch level {
	case "debug":
		l.SetLevel(logrus.DebugLevel)
	case "warn":
		l.SetLevel(logrus.WarnLevel)
	case "error":
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}
}

// New returns a logger sharing one configured base. Until Configure is
// called the base follows ENVIRONMENT and LOG_LEVEL as first seen.
func New() *Logger {
	baseOnce.Do(func() { base = newBase() })
	return &Logger{Entry: logrus.NewEntry(base)}
}

// Configure applies the environment and level to every logger.
func Configure(env, level string) {
	configure(New().Logger, env, level)
}

// SetOutput redirects every logger, e.g. to silence the CLI.
func SetOutput(w io.Writer) {
	New().Logger.SetOutput(w)
}

// WithRequest attaches request metadata and returns an entry
func (l *Logger) WithRequest(r *http.Request) *logrus.Entry {
	reqID := r.Header.Get("X-Request-ID")
	if reqID == "" {
		reqID = uuid.New().String()
	}

	return l.WithFields(logrus.Fields{
		"req_id":     reqID,
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote_ip":  r.RemoteAddr,
		"user_agent": r.UserAgent(),
	})
}

// WithError standardizes error logging
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}
