package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger
	logsPath string
	Name     string
}

// Config represents configuration options for logger initialization
type Config struct {
	Debug     bool      // Enable debug logging
	TimeZone  string    // Time zone of timestamps (GMT+0, GMT+3, etc.)
	LogToFile bool      // Also write JSON logs to a file
	LogsDir   string    // Directory for log files (default: current working directory)
	Output    io.Writer // Console output (default: stdout)
}

// New builds a console logger, plus a JSON file logger when enabled.
func New(config Config) (*Logger, error) {
	l := Logger{Name: "dotqr"}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     timeEncoder(zoneOf(config.TimeZone)),
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	// Console encoder with colors
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(out)), level),
	}

	if config.LogToFile {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		l.logsPath = wd
		if config.LogsDir != "" {
			l.logsPath = config.LogsDir
			if !filepath.IsAbs(l.logsPath) {
				l.logsPath = filepath.Join(wd, config.LogsDir)
			}
		}
		if err := os.MkdirAll(l.logsPath, os.ModePerm); err != nil {
			return nil, err
		}

		// File encoder without colors
		fileEncoderConfig := encoderConfig
		fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		mainLogPath := filepath.Join(l.logsPath, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02 15-04")))
		fileWriter, err := os.OpenFile(mainLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(fileWriter), level))
	}

	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	l.SugaredLogger = log.Named(l.Name).Sugar()
	return &l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "nop"}
}

// Named returns a child logger with the specified name ("generator", "cli", etc.)
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.Named(name),
		logsPath:      l.logsPath,
		Name:          name,
	}
}

// LogsPath is the directory log files are written to, empty when file
// logging is off.
func (l *Logger) LogsPath() string { return l.logsPath }

// zoneOf parses "GMT+3", "UTC-5" or an IANA name. Anything else is UTC.
func zoneOf(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	upper := strings.ToUpper(name)
	for _, prefix := range []string{"GMT", "UTC"} {
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		rest := upper[len(prefix):]
		if rest == "" {
			return time.UTC
		}
		if hours, err := strconv.Atoi(rest); err == nil {
			return time.FixedZone(name, hours*60*60)
		}
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.UTC
}

func timeEncoder(loc *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05"))
	}
}
