package debug

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once
	logger     *zap.SugaredLogger
)

// Logger returns the process debug logger. It discards everything unless
// one of the DOCMAP_DEBUG_* variables is set.
func Logger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		if !enabled() {
			logger = zap.NewNop().Sugar()
			return
		}
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	})
	return logger
}

func Logf(msg string, args ...interface{}) {
	Logger().Debugf(msg, args...)
}
