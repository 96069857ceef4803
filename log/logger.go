package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// fileWriter is the destination every event of a Logger goes through.
// Rotate swaps the file underneath it, so no event ever sees a closed file.
type fileWriter struct {
	mu   sync.Mutex
	file *os.File
}

func (w *fileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return len(p), nil
	}
	return w.file.Write(p)
}

// Logger writes structured log lines to a file, and to stderr in debug mode.
type Logger struct {
	out   *fileWriter
	level zerolog.Level
	debug bool
	zl    zerolog.Logger
}

var (
	logger = NewNopLogger()
)

func GetLogger() *Logger {
	return logger
}

// SetLogger replaces the package logger and closes the previous one.
// Passing nil installs a no-op logger.
func SetLogger(l *Logger) {
	if logger != nil {
		logger.Close()
	}
	if l == nil {
		l = NewNopLogger()
	}
	logger = l
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{out: &fileWriter{}, level: zerolog.Disabled, zl: zerolog.Nop()}
}

// ParseLevel accepts the zerolog level names; the empty string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// NewLogger logs at the given level to filename, opened in append mode.
// An empty filename writes no file; in debug mode stderr still gets the events.
func NewLogger(filename, level string, debug bool) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if debug && lvl > zerolog.DebugLevel {
		lvl = zerolog.DebugLevel
	}

	out := &fileWriter{}
	if filename != "" {
		out.file, err = openLogFile(filename)
		if err != nil {
			return nil, err
		}
	}

	l := &Logger{
		out:   out,
		level: lvl,
		debug: debug,
	}
	l.zl = l.newZerolog()
	return l, nil
}

func openLogFile(filename string) (*os.File, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func (l *Logger) newZerolog() zerolog.Logger {
	var out io.Writer = l.out
	if l.debug {
		out = zerolog.MultiLevelWriter(l.out, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return zerolog.New(out).Level(l.level).With().Timestamp().Logger()
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Close closes the log file; later events are dropped.
func (l *Logger) Close() {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file != nil {
		_ = l.out.file.Close()
		l.out.file = nil
	}
}

// Rotate closes and reopens the log file so an external rotator can move it away.
func (l *Logger) Rotate() error {
	l.out.mu.Lock()
	defer l.out.mu.Unlock()

	if l.out.file == nil {
		return nil
	}

	currentLogPath := l.out.file.Name()
	_ = l.out.file.Close()

	logFile, err := openLogFile(currentLogPath)
	if err != nil {
		l.out.file = nil
		return fmt.Errorf("failed to reopen log file: %w", err)
	}
	l.out.file = logFile
	return nil
}
