// Package logger 基于 logrus 的日志初始化，文件输出走 lumberjack 轮转。
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger 全局日志实例
var Logger *logrus.Logger

// Config 日志配置
type Config struct {
	Level      string // 日志级别: debug, info, warn, error
	OutputFile string // 日志文件路径（可选，为空则只输出到控制台）
	MaxSize    int    // 日志文件最大大小（MB）
	MaxBackups int    // 保留的旧日志文件数量
	MaxAge     int    // 保留旧日志文件的天数
	Compress   bool   // 是否压缩旧日志文件
}

// Init 初始化日志系统
func Init(config Config) error {
	logger := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})

	writers := []io.Writer{os.Stdout}
	if config.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(config.OutputFile), 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.OutputFile,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}

	multiWriter := io.MultiWriter(writers...)
	logger.SetOutput(multiWriter)

	// 同步全局 logrus，保证直接用 logrus.WithField() 的代码也写到同一处
	logrus.SetOutput(multiWriter)
	logrus.SetLevel(level)

	Logger = logger
	return nil
}

// InitDefault 使用默认配置初始化日志系统
func InitDefault() error {
	return Init(Config{
		Level:      "info",
		OutputFile: "",
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	})
}

func get() *logrus.Logger {
	if Logger == nil {
		Logger = logrus.StandardLogger()
	}
	return Logger
}

// Debugf 记录格式化的 DEBUG 级别日志
func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }

// Infof 记录格式化的 INFO 级别日志
func Infof(format string, args ...interface{}) { get().Infof(format, args...) }

// Warnf 记录格式化的 WARN 级别日志
func Warnf(format string, args ...interface{}) { get().Warnf(format, args...) }

// Errorf 记录格式化的 ERROR 级别日志
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Info 记录 INFO 级别日志
func Info(args ...interface{}) { get().Info(args...) }

// Warn 记录 WARN 级别日志
func Warn(args ...interface{}) { get().Warn(args...) }

// Error 记录 ERROR 级别日志
func Error(args ...interface{}) { get().Error(args...) }

// WithField 添加字段到日志上下文
func WithField(key string, value interface{}) *logrus.Entry {
	return get().WithField(key, value)
}

// WithFields 添加多个字段到日志上下文
func WithFields(fields logrus.Fields) *logrus.Entry {
	return get().WithFields(fields)
}
