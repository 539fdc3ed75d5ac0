// Package logger quản lý các logger của hệ thống (app, audit, error).
// Log được ghi bất đồng bộ qua AsyncHook, xoay vòng file bằng lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`   // trace, debug, info, warn, error, fatal
	Format string `env:"LOG_FORMAT" envDefault:"text"`  // json, text
	Output string `env:"LOG_OUTPUT" envDefault:"both"`  // file, stdout, both

	// Log rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"` // Nén file cũ

	LogPath   string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile   string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	ErrorFile string `env:"LOG_ERROR_FILE" envDefault:"error.log"`
}

// DefaultConfig đọc cấu hình logging từ environment variables,
// dùng giá trị mặc định cho các biến không được set.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		// Env không hợp lệ thì vẫn chạy được với mặc định
		cfg = &LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "both",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   true,
			LogPath:    "./logs",
			AppFile:    "app.log",
			AuditFile:  "audit.log",
			ErrorFile:  "error.log",
		}
	}
	if os.Getenv("GO_ENV") == "development" {
		cfg.Level = "debug"
	}
	return cfg
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex

	config *LogConfig
)

// Init khởi tạo hệ thống logging. cfg nil thì dùng DefaultConfig.
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if err := os.MkdirAll(cfg.LogPath, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// GetLogger trả về logger theo tên (app, audit, error), tạo mới nếu chưa có.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}

	if logger, ok := loggers[name]; ok {
		return logger
	}

	logger := createLogger(name)
	loggers[name] = logger
	return logger
}

func createLogger(name string) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
				logrus.FieldKeyFunc:  "function",
				logrus.FieldKeyFile:  "file",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				s := strings.Split(f.Function, ".")
				funcName := s[len(s)-1]
				return funcName, fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
			},
		})
	}

	// Tách file writer và stdout writer, ghi qua async hook
	// để file I/O chậm không block request handling.
	var writers []io.Writer

	if config.Output == "file" || config.Output == "both" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFilePath(name),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.Output == "stdout" || config.Output == "both" {
		writers = append(writers, os.Stdout)
	}

	if len(writers) > 0 {
		logger.AddHook(NewAsyncHook(writers, 1000))
		// Hook xử lý toàn bộ output, discard để không ghi trùng
		logger.SetOutput(io.Discard)
	}

	logger.SetReportCaller(true)
	logger = logger.WithField("service", name).Logger

	logger.WithFields(logrus.Fields{
		"log_file": logFilePath(name),
		"level":    logger.GetLevel().String(),
		"format":   config.Format,
		"output":   config.Output,
	}).Info("Logger initialized successfully")

	return logger
}

func logFilePath(name string) string {
	var filename string
	switch name {
	case "app":
		filename = config.AppFile
	case "audit":
		filename = config.AuditFile
	case "error":
		filename = config.ErrorFile
	default:
		filename = fmt.Sprintf("%s.log", name)
	}
	return filepath.Join(config.LogPath, filename)
}

// GetAppLogger trả về logger chính của ứng dụng
func GetAppLogger() *logrus.Logger {
	return GetLogger("app")
}

// GetAuditLogger trả về logger cho audit
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// GetErrorLogger trả về logger cho errors
func GetErrorLogger() *logrus.Logger {
	return GetLogger("error")
}
