package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// TraceLevel sits below log.DebugLevel for per-frame chatter.
const TraceLevel = log.DebugLevel - 4

// LogLevelEnv names the environment variable holding the level filter.
const LogLevelEnv = "OXIDE_LOG"

const logPrefix = "Oxide 🦀 "

// LoggerOptions configures the process-wide logger.
type LoggerOptions struct {
	// Directory receives the daily log files. Empty means ~/.oxide/logs.
	Directory string
	// DisableFile keeps the logger on the console only.
	DisableFile bool
	// Level overrides the level read from LogLevelEnv.
	Level string
	// Console defaults to os.Stderr.
	Console io.Writer
}

type logger struct {
	sinks []*log.Logger
	file  *dailyFile
}

var (
	once      sync.Once
	singleton atomic.Pointer[logger]
)

func getLogger() *logger {
	if l := singleton.Load(); l != nil {
		return l
	}
	once.Do(func() {
		singleton.CompareAndSwap(nil, &logger{
			sinks: []*log.Logger{newConsoleLogger(os.Stderr, log.InfoLevel)},
		})
	})
	return singleton.Load()
}

// InitLogger installs the process-wide logger. It should be called once at
// the start of the application, before the engine is created.
func InitLogger(opts LoggerOptions) error {
	levelName := opts.Level
	if levelName == "" {
		levelName = os.Getenv(LogLevelEnv)
	}
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	l := &logger{
		sinks: []*log.Logger{newConsoleLogger(console, level)},
	}

	if !opts.DisableFile {
		dir, err := logDirectory(opts.Directory)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
		l.file = &dailyFile{dir: dir, prefix: "log", now: time.Now}
		fl := log.NewWithOptions(l.file, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Formatter:       log.LogfmtFormatter,
			Level:           level,
		})
		l.sinks = append(l.sinks, fl)
	}

	replaceLogger(l)
	return nil
}

// DisableLogging routes every log call to a no-op sink.
func DisableLogging() {
	replaceLogger(&logger{
		sinks: []*log.Logger{log.New(io.Discard)},
	})
}

// CloseLogger flushes and closes the file sink, if any.
func CloseLogger() error {
	l := singleton.Load()
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func replaceLogger(l *logger) {
	once.Do(func() {})
	if old := singleton.Swap(l); old != nil && old.file != nil {
		_ = old.file.Close()
	}
}

// ParseLogLevel accepts the charmbracelet level names plus "trace". The
// empty string maps to info.
func ParseLogLevel(name string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return log.InfoLevel, nil
	case "trace":
		return TraceLevel, nil
	default:
		return log.ParseLevel(name)
	}
}

func newConsoleLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		CallerOffset:    1,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          logPrefix,
		Level:           level,
	})
	styles := log.DefaultStyles()
	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRAC").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("244"))
	l.SetStyles(styles)
	return l
}

func logDirectory(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoLogDirectory
	}
	return filepath.Join(home, ".oxide", "logs"), nil
}

func emit(level log.Level, msg string, args ...interface{}) {
	text := fmt.Sprintf(msg, args...)
	for _, s := range getLogger().sinks {
		s.Log(level, text)
	}
}

func LogTrace(msg string, args ...interface{}) {
	emit(TraceLevel, msg, args...)
}

func LogDebug(msg string, args ...interface{}) {
	emit(log.DebugLevel, msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	emit(log.InfoLevel, msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	emit(log.WarnLevel, msg, args...)
}

func LogError(msg string, args ...interface{}) {
	emit(log.ErrorLevel, msg, args...)
}

// LogFatal logs on every sink and exits the process.
func LogFatal(msg string, args ...interface{}) {
	emit(log.FatalLevel, msg, args...)
	_ = CloseLogger()
	os.Exit(1)
}

// dailyFile is an io.Writer that appends to <dir>/<prefix>.YYYY-MM-DD and
// switches file when the date changes.
type dailyFile struct {
	dir    string
	prefix string
	now    func() time.Time

	mu  sync.Mutex
	day string
	f   *os.File
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	day := d.now().Format("2006-01-02")
	if d.f == nil || day != d.day {
		if d.f != nil {
			_ = d.f.Close()
		}
		name := filepath.Join(d.dir, d.prefix+"."+day)
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			d.f = nil
			return 0, err
		}
		d.f = f
		d.day = day
	}
	return d.f.Write(p)
}

func (d *dailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}
