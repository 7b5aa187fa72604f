package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
	Sync() error
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap.
type ZapLogger struct {
	zl *zap.Logger
}

// NewLogger cria o Logger da aplicação.
// level: "debug", "info", "warn", "error" (padrão: "info")
// format: "json" ou "console" (padrão: "json")
func NewLogger(level string, format string) (Logger, error) {
	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	zl, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		zl = zl.With(zap.String("hostname", hostname))
	}

	return &ZapLogger{zl: zl}, nil
}

// NewNop retorna um Logger que descarta tudo (usado nos testes).
func NewNop() Logger {
	return &ZapLogger{zl: zap.NewNop()}
}

// Wrap adapta um *zap.Logger já configurado.
func Wrap(zl *zap.Logger) Logger {
	return &ZapLogger{zl: zl}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

// Implementações da Interface Logger

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.zl.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.zl.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.zl.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.zl.Error(msg, zap.Error(err))
}

// Fatal registra o erro e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.zl.Fatal(msg, zap.Error(err))
}

// Sync descarrega os buffers pendentes do zap.
func (l *ZapLogger) Sync() error {
	return l.zl.Sync()
}
