package log

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// 日志级别
var (
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
	ErrorLevel = logrus.ErrorLevel
)

// TextFormatter 是 logrus 中的文本格式化器的别名。
type TextFormatter = logrus.TextFormatter

// Level 是 logrus 中级别的别名。
type Level = logrus.Level

// Fields 是 logrus 中字段集合的别名。
type Fields = logrus.Fields

// ParseLevel 把 "debug"、"info" 之类的字符串转成日志级别。
func ParseLevel(level string) (Level, error) {
	return logrus.ParseLevel(level)
}

// CheckErr 检查错误是否不为 nil，并将其记录在提供的日志级别上。
func CheckErr(level logrus.Level, err error) {
	if err != nil {
		Log(level, err)
	}
}

// Log 在指定的日志级别上记录提供的消息
func Log(level logrus.Level, messages ...interface{}) {
	switch level {
	case logrus.InfoLevel:
		logrus.Info(messages...)
	case logrus.WarnLevel:
		logrus.Warn(messages...)
	case logrus.ErrorLevel:
		logrus.Error(messages...)
	case logrus.DebugLevel:
		fallthrough
	default:
		logrus.Debug(messages...)
	}
}

// SetFormatter 设置 logrus 的格式化器
func SetFormatter(formatter logrus.Formatter) {
	logrus.SetFormatter(formatter)
}

// SetLevel 设置日志级别
func SetLevel(level logrus.Level) {
	logrus.SetLevel(level)
}

// WithField 添加字段到日志记录。
func WithField(key string, value interface{}) *logrus.Entry {
	return logrus.WithField(key, value)
}

// WithFields 添加字段到日志记录。
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

// Info 记录信息日志。
func Info(messages ...interface{}) {
	logrus.Info(messages...)
}

// Infof 格式化并记录信息日志。
func Infof(format string, messages ...interface{}) {
	logrus.Infof(format, messages...)
}

// Warn 记录警告日志。
func Warn(messages ...interface{}) {
	logrus.Warn(messages...)
}

// Warnf 格式化并记录警告日志。
func Warnf(format string, messages ...interface{}) {
	logrus.Warnf(format, messages...)
}

// Error 记录错误日志。
func Error(messages ...interface{}) {
	logrus.Error(messages...)
}

// Errorf 格式化并记录错误日志。
func Errorf(format string, messages ...interface{}) {
	logrus.Errorf(format, messages...)
}

// Debug 记录调试日志。
func Debug(messages ...interface{}) {
	logrus.Debug(messages...)
}

// Debugf 格式化并记录调试日志。
func Debugf(format string, messages ...interface{}) {
	logrus.Debugf(format, messages...)
}

// Throttle 限制同一条日志的输出频率：每个 interval 最多放行一次。
// interval <= 0 时每次都放行。
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewThrottle 创建一个限流器
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow 判断 now 时刻是否可以输出日志，放行时记录本次时间。
func (t *Throttle) Allow(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.interval > 0 && !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
