package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON object per event with the service name, the action
// and any extra fields.
type Logger struct {
	service string
	z       *zap.Logger
}

// Init builds the process-wide zap logger. Until it is called every Logger
// discards its output.
func Init(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	cfg.OutputPaths = []string{"stdout"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	z, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(z)
	return nil
}

func Sync() { _ = zap.L().Sync() }

func New(service string) *Logger { return NewWith(zap.L(), service) }

// NewWith wraps an existing zap logger, mostly for tests.
func NewWith(z *zap.Logger, service string) *Logger {
	return &Logger{
		service: service,
		z:       z.With(zap.String("service", service), zap.String("hostname", hostname())),
	}
}

func (l *Logger) Service() string { return l.service }

func (l *Logger) log(level zapcore.Level, action string, fields map[string]any, err error) {
	if ce := l.z.Check(level, action); ce != nil {
		zf := make([]zap.Field, 0, len(fields)+2)
		zf = append(zf, zap.String("action", action))
		for k, v := range fields {
			zf = append(zf, zap.Any(k, v))
		}
		if err != nil {
			zf = append(zf, zap.Error(err))
		}
		ce.Write(zf...)
	}
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log(zapcore.InfoLevel, action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log(zapcore.DebugLevel, action, fields, nil) }
func (l *Logger) Warn(action string, fields map[string]any)  { l.log(zapcore.WarnLevel, action, fields, nil) }
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(zapcore.ErrorLevel, action, fields, err)
}

func hostname() string { h, _ := os.Hostname(); return h }
