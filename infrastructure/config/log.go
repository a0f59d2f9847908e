package config

import (
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcutil"
	"github.com/kaspanet/setsum/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	defaultLogDirname     = "logs"
	defaultLogLevel       = "info"
	defaultLogFilename    = "%s.log"
	defaultErrLogFilename = "%s_err.log"
)

// LogFlags holds the logging options shared by all setsum commands.
type LogFlags struct {
	LogDir     string `long:"logdir" description:"Directory to log output"`
	NoLogFiles bool   `long:"nologfiles" description:"Disable logging to files, log to stderr only"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical, off} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

// DefaultLogDir returns the default log directory of the given application.
func DefaultLogDir(appName string) string {
	return filepath.Join(btcutil.AppDataDir(appName, false), defaultLogDirname)
}

// ResolveLogging fills in defaults, validates the log levels, attaches the
// log writers and starts the logger backend.
func (logFlags *LogFlags) ResolveLogging(appName string) error {
	if logFlags.DebugLevel == "" {
		logFlags.DebugLevel = defaultLogLevel
	}
	if logFlags.LogDir == "" {
		logFlags.LogDir = DefaultLogDir(appName)
	}

	err := logger.ParseAndSetLogLevels(logFlags.DebugLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid debuglevel. Supported subsystems: %v", logger.SupportedSubsystems())
	}

	if logFlags.NoLogFiles {
		err = logger.InitLogStderr(logger.LevelInfo)
	} else {
		err = logger.InitLog(logFlags.LogFile(appName), logFlags.ErrLogFile(appName))
	}
	if err != nil {
		return err
	}
	return logger.BackendLog.Run()
}

// LogFile returns the path of the main log file of the given application.
func (logFlags *LogFlags) LogFile(appName string) string {
	return filepath.Join(logFlags.LogDir, fmt.Sprintf(defaultLogFilename, appName))
}

// ErrLogFile returns the path of the error log file of the given application.
func (logFlags *LogFlags) ErrLogFile(appName string) string {
	return filepath.Join(logFlags.LogDir, fmt.Sprintf(defaultErrLogFilename, appName))
}
