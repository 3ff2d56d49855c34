package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ducminhle1904/freqtrade-launcher/internal/params"
	"github.com/ducminhle1904/freqtrade-launcher/internal/session"
)

// Logger writes a JSON audit trail of parameter sets and runs for one front-end
type Logger struct {
	frontend string
	logDir   string
	path     string
	logFile  *os.File
	zl       *zap.Logger
	mu       sync.Mutex
	closed   bool
}

// NewLogger creates logs/<frontend>_<date>.log under logDir, appending when it exists
func NewLogger(logDir, frontend string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fileName(frontend, time.Now()))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), zapcore.InfoLevel)

	l := &Logger{
		frontend: frontend,
		logDir:   logDir,
		path:     logPath,
		logFile:  file,
		zl:       zap.New(core).With(zap.String("frontend", frontend)),
	}
	l.zl.Info("session started", zap.Int("pid", os.Getpid()))
	return l, nil
}

func fileName(frontend string, t time.Time) string {
	return fmt.Sprintf("%s_%s.log", frontend, t.Format("2006-01-02"))
}

// ParametersCollected records the validated parameter set
func (l *Logger) ParametersCollected(_ string, set *params.Set) {
	fields := make([]zap.Field, 0, set.Len())
	for _, k := range set.Keys() {
		v, _ := set.Get(k)
		switch v.Kind() {
		case params.KindInt:
			fields = append(fields, zap.Int(k, set.Int(k)))
		case params.KindBool:
			fields = append(fields, zap.Bool(k, set.Bool(k)))
		case params.KindList:
			fields = append(fields, zap.Strings(k, set.List(k)))
		default:
			fields = append(fields, zap.String(k, set.String(k)))
		}
	}
	l.write(func(zl *zap.Logger) {
		zl.Info("parameters collected", zap.Dict("params", fields...))
	})
}

// RunFinished records one finished or failed run
func (l *Logger) RunFinished(rec session.RunRecord) {
	fields := []zap.Field{
		zap.Int("attempt", rec.Attempt),
		zap.String("reason", string(rec.Reason)),
		zap.Strings("command", rec.Command.Tokens()),
		zap.Time("started", rec.Result.Started),
		zap.Duration("duration", rec.Result.Duration),
	}

	l.write(func(zl *zap.Logger) {
		if rec.Result.Err != nil {
			zl.Warn("launch failed", append(fields, zap.Error(rec.Result.Err))...)
			return
		}
		zl.Info("run finished", append(fields, zap.Int("exit_code", rec.Result.ExitCode))...)
	})
}

// Error records a fatal error ending the session
func (l *Logger) Error(msg string, err error) {
	l.write(func(zl *zap.Logger) {
		zl.Error(msg, zap.Error(err))
	})
}

func (l *Logger) write(fn func(*zap.Logger)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	fn(l.zl)
}

// Close writes the session end entry and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	l.zl.Info("session ended")
	_ = l.zl.Sync()
	return l.logFile.Close()
}

// GetLogPath returns the log file path
func (l *Logger) GetLogPath() string {
	return l.path
}
