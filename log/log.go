// High level log wrapper, so it can output different log based on level.
//
// There are five levels in total: FATAL, ERROR, WARNING, INFO, DEBUG.
// The default log output level is INFO, you can change it by:
// - call log.SetLevelByString()
// - set environment variable `LOG_LEVEL`
//
// Records are written by zap with a console encoder; Init may redirect them to a rotated file.

package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the rotated log file. An empty Filename keeps logging on stderr.
type FileConfig struct {
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"` // megabytes
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

type Config struct {
	Level string     `toml:"level"`
	File  FileConfig `toml:"file"`
}

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  *zap.Logger
	_log  *zap.SugaredLogger
)

func init() {
	setOutput(zapcore.Lock(os.Stderr))
	if l := os.Getenv("LOG_LEVEL"); len(l) != 0 {
		SetLevelByString(l)
	}
}

func setOutput(ws zapcore.WriteSyncer) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	base = zap.New(core, zap.AddCaller())
	_log = base.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// Init applies cfg. It must be called before any goroutine starts logging.
func Init(cfg *Config) {
	if cfg.File.Filename != "" {
		setOutput(zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File.Filename,
			MaxSize:    cfg.File.MaxSize,
			MaxAge:     cfg.File.MaxDays,
			MaxBackups: cfg.File.MaxBackups,
			LocalTime:  true,
		}))
	}
	if cfg.Level != "" {
		SetLevelByString(cfg.Level)
	}
}

// With returns a structured logger carrying fields.
func With(fields ...zap.Field) *zap.Logger {
	return base.With(fields...)
}

func SetLevelByString(l string) {
	var lv zapcore.Level
	l = strings.ToLower(l)
	if l == "warning" {
		l = "warn"
	}
	if err := lv.UnmarshalText([]byte(l)); err != nil {
		_log.Warnf("unknown log level %q, keep %s", l, level.Level())
		return
	}
	level.SetLevel(lv)
}

func GetLevel() zapcore.Level {
	return level.Level()
}

func Sync() error {
	return base.Sync()
}

func Debug(v ...interface{}) {
	_log.Debug(v...)
}

func Debugf(format string, v ...interface{}) {
	_log.Debugf(format, v...)
}

func Info(v ...interface{}) {
	_log.Info(v...)
}

func Infof(format string, v ...interface{}) {
	_log.Infof(format, v...)
}

func Warn(v ...interface{}) {
	_log.Warn(v...)
}

func Warnf(format string, v ...interface{}) {
	_log.Warnf(format, v...)
}

func Warning(v ...interface{}) {
	_log.Warn(v...)
}

func Warningf(format string, v ...interface{}) {
	_log.Warnf(format, v...)
}

func Error(v ...interface{}) {
	_log.Error(v...)
}

func Errorf(format string, v ...interface{}) {
	_log.Errorf(format, v...)
}

func Fatal(v ...interface{}) {
	_log.Fatal(v...)
}

func Fatalf(format string, v ...interface{}) {
	_log.Fatalf(format, v...)
}

func Panic(v ...interface{}) {
	_log.Panic(v...)
}

func Panicf(format string, v ...interface{}) {
	_log.Panicf(format, v...)
}
