package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOption 日志初始化参数
type LogOption struct {
	Format   string // "console" 或 "json"
	LogDir   string // 为空时只输出到 stderr
	Level    string // debug / info / warn / error
	Compress bool   // 是否压缩旧日志文件
}

var sugar = newDefault()

// newDefault 默认 logger，Init 之前的日志也能输出
func newDefault() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	l, _ := cfg.Build(zap.AddCallerSkip(1))
	return l.Sugar()
}

// Init 按配置重建全局 logger
func Init(opt LogOption) error {
	level := zapcore.InfoLevel
	if opt.Level != "" {
		if err := level.Set(opt.Level); err != nil {
			return err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if opt.Format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	// 结果行走 stdout，诊断日志走 stderr，二者不混流
	ws := zapcore.AddSync(os.Stderr)
	if opt.LogDir != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, "marketcap.log"),
			MaxSize:    100, // MB
			MaxBackups: 10,
			Compress:   opt.Compress,
		})
	}

	core := zapcore.NewCore(enc, ws, level)
	sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	return nil
}

// MustInit 同 Init，失败时 panic（启动期使用）
func MustInit(opt LogOption) {
	if err := Init(opt); err != nil {
		panic(err)
	}
}

func Debugf(format string, args ...any) { sugar.Debugf(format, args...) }
func Infof(format string, args ...any)  { sugar.Infof(format, args...) }
func Warnf(format string, args ...any)  { sugar.Warnf(format, args...) }
func Errorf(format string, args ...any) { sugar.Errorf(format, args...) }

// Sync 刷新缓冲日志，进程退出前调用
func Sync() {
	_ = sugar.Sync()
}
