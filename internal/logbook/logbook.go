package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log entry.
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel maps a config value ("info", "WARN", ...) to a Level.
func ParseLevel(value string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(value))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn:
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("logbook: unknown level %q", value)
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Option customizes a Logbook.
type Option func(*options)

type options struct {
	level   Level
	session string
}

// WithLevel drops entries below level.
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithSession tags every entry with a session id.
func WithSession(id string) Option {
	return func(o *options) { o.session = strings.TrimSpace(id) }
}

// tailCapacity bounds the recent lines kept in memory for Tail.
const tailCapacity = 200

// Logbook persists wizard activity to a plain text file that the TUI can tail.
type Logbook struct {
	path   string
	file   *os.File
	logger *zap.Logger
	recent *recentLines
	mu     sync.Mutex
}

// recentLines is a zap sink holding the last encoded entries, so Tail never
// has to reread the file.
type recentLines struct {
	lines []string
	limit int
}

func (r *recentLines) add(line string) {
	r.lines = append(r.lines, line)
	if over := len(r.lines) - r.limit; over > 0 {
		r.lines = append(r.lines[:0], r.lines[over:]...)
	}
}

func (r *recentLines) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			r.add(line)
		}
	}
	return len(p), nil
}

func (r *recentLines) Sync() error { return nil }

// seedRecent loads the tail of an existing journal once, at open.
func seedRecent(path string, limit int) *recentLines {
	r := &recentLines{limit: limit}
	file, err := os.Open(path)
	if err != nil {
		return r
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			r.add(line)
		}
	}
	return r
}

// New creates a logbook that appends to the provided path.
func New(path string, opts ...Option) (*Logbook, error) {
	o := options{level: LevelInfo}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	recent := seedRecent(path, tailCapacity)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open %s: %w", path, err)
	}
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       utcRFC3339,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.NewMultiWriteSyncer(zapcore.AddSync(file), recent)),
		zap.NewAtomicLevelAt(o.level.zap()),
	)
	logger := zap.New(core)
	if o.session != "" {
		logger = logger.With(zap.String("session", o.session))
	}
	return &Logbook{path: path, file: file, logger: logger, recent: recent}, nil
}

func utcRFC3339(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339))
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Close flushes and releases the file handle.
func (l *Logbook) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.logger.Sync()
	err := l.file.Close()
	l.file = nil
	return err
}

// Append writes a single entry to the logbook.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	if ce := l.logger.Check(level.zap(), strings.TrimSpace(message)); ce != nil {
		ce.Write()
	}
}

// Tail returns up to maxLines of the most recent log entries, including
// those already in the file when the logbook was opened. At most
// tailCapacity lines are retained.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || l.recent == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	lines := l.recent.lines
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return append([]string(nil), lines...)
}

// Debug appends a debug entry.
func (l *Logbook) Debug(format string, args ...any) {
	l.Append(LevelDebug, fmt.Sprintf(format, args...))
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
