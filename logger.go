package tmdb

import (
	"os"

	"github.com/charmbracelet/log"
)

// newLogger returns the library logger. The logger stays silent unless the
// client was configured with Debug set, in which case hydration and request
// activity is reported at debug level.
func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "tmdb21",
		ReportTimestamp: debug,
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.FatalLevel)
	}

	return logger
}
