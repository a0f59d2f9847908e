package logger

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// BackendLog is the logging backend shared by every registered subsystem.
var BackendLog = NewBackend()

var (
	subsystemLoggers      = make(map[string]*Logger)
	subsystemLoggersMutex sync.Mutex
)

// RegisterSubSystem returns the logger of the given subsystem tag, creating
// it on first use.
func RegisterSubSystem(subsystem string) *Logger {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, exists := subsystemLoggers[subsystem]
	if !exists {
		logger = BackendLog.Logger(subsystem)
		subsystemLoggers[subsystem] = logger
	}
	return logger
}

// Get returns the logger of a registered subsystem.
func Get(subsystem string) (logger *Logger, ok bool) {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	logger, ok = subsystemLoggers[subsystem]
	return logger, ok
}

// SupportedSubsystems returns a sorted slice of the registered subsystem tags.
func SupportedSubsystems() []string {
	subsystemLoggersMutex.Lock()
	defer subsystemLoggersMutex.Unlock()

	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsystem := range subsystemLoggers {
		subsystems = append(subsystems, subsystem)
	}
	sort.Strings(subsystems)
	return subsystems
}

// InitLog attaches the standard set of writers to BackendLog: logFile at
// trace level, errLogFile at warn level and stderr at info level. The
// backend is not started.
func InitLog(logFile, errLogFile string) error {
	err := BackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", logFile, LevelTrace)
	}
	err = BackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		return errors.Wrapf(err, "error adding log file %s as log rotator for level %s", errLogFile, LevelWarn)
	}
	return InitLogStderr(LevelInfo)
}

// InitLogStderr attaches stderr to BackendLog at the given level.
func InitLogStderr(logLevel Level) error {
	err := BackendLog.AddLogWriter(os.Stderr, logLevel)
	if err != nil {
		return errors.Wrapf(err, "error adding stderr to the logger for level %s", logLevel)
	}
	return nil
}

// SetLogLevel sets the logging level of the given subsystem. Invalid
// subsystems are ignored. Invalid levels default to info.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := Get(subsystemID)
	if !ok {
		return
	}
	level, _ := LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the logging level of all registered subsystems.
func SetLogLevels(logLevel string) {
	for _, subsystemID := range SupportedSubsystems() {
		SetLogLevel(subsystemID, logLevel)
	}
}

// ParseAndSetLogLevels validates debugLevel and applies it. debugLevel is
// either a single level for all subsystems, or a comma separated list of
// <subsystem>=<level> pairs.
func ParseAndSetLogLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if _, ok := LevelFromString(debugLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	type subsystemLevel struct {
		subsystem string
		level     string
	}
	pairs := make([]subsystemLevel, 0)
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return errors.Errorf("the specified debug level contains an invalid "+
				"subsystem/level pair [%s]", logLevelPair)
		}
		fields := strings.Split(logLevelPair, "=")
		subsystemID, logLevel := fields[0], fields[1]
		if _, exists := Get(subsystemID); !exists {
			return errors.Errorf("the specified subsystem [%s] is invalid -- "+
				"supported subsystems %s", subsystemID, strings.Join(SupportedSubsystems(), ", "))
		}
		if _, ok := LevelFromString(logLevel); !ok {
			return errors.Errorf("the specified debug level [%s] is invalid", logLevel)
		}
		pairs = append(pairs, subsystemLevel{subsystemID, logLevel})
	}

	for _, pair := range pairs {
		SetLogLevel(pair.subsystem, pair.level)
	}
	return nil
}
