// Package logging owns the process-wide zap logger used by every projinspect command.
package logging

import (
	"go.uber.org/zap"
)

// Logger stays a no-op until Setup runs, so config errors reported before
// flags are parsed never produce log lines.
var Logger = zap.NewNop()

// Setup replaces Logger. Runs log JSON at info level; debug switches to the
// console encoder at debug level so traversal and packing decisions show up.
func Setup(debug bool, appName, appVersion string) error {
	var err error
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// OrNop lets library entry points accept a nil logger.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
