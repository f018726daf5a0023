package logging

import (
	"go.uber.org/zap"
)

// New builds a sugared logger for the audit pipeline. Debug mode uses the
// development config; otherwise warnings and above are emitted.
func New(debug bool) *zap.SugaredLogger {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything. Used as the library default
// so embedding callers are not forced to configure logging.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
