package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger 全局结构化日志，默认输出到 stderr
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.RFC3339,
	Level:           log.InfoLevel,
})

// Init 按配置设置日志级别，无法解析时保持 info
func Init(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		Logger.Warn("invalid log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	Logger.SetLevel(lvl)
}

// SetOutput 重定向日志输出，测试中使用
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal 记录错误后退出进程，仅用于启动阶段
func Fatal(msg string, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}
