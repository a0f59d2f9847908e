package config

import (
	"path/filepath"
	"testing"

	"github.com/kaspanet/setsum/infrastructure/logger"
)

func TestResolveLoggingRejectsInvalidLevel(t *testing.T) {
	for _, debugLevel := range []string{"loud", "NOSUCHSUBSYSTEM=debug"} {
		logFlags := &LogFlags{DebugLevel: debugLevel, NoLogFiles: true}
		if err := logFlags.ResolveLogging("setsum"); err == nil {
			t.Errorf("ResolveLogging is expected to fail for debug level %q", debugLevel)
		}
	}
	if logger.BackendLog.IsRunning() {
		t.Fatalf("a failed ResolveLogging must not start the logger backend")
	}
}

func TestLogFilePaths(t *testing.T) {
	logFlags := &LogFlags{LogDir: filepath.Join("var", "log", "setsum")}

	if logFile := logFlags.LogFile("setsum"); logFile != filepath.Join("var", "log", "setsum", "setsum.log") {
		t.Errorf("unexpected log file %s", logFile)
	}
	if errLogFile := logFlags.ErrLogFile("setsum"); errLogFile != filepath.Join("var", "log", "setsum", "setsum_err.log") {
		t.Errorf("unexpected error log file %s", errLogFile)
	}
}

func TestDefaultLogDir(t *testing.T) {
	logDir := DefaultLogDir("setsum")
	if filepath.Base(logDir) != defaultLogDirname {
		t.Errorf("default log directory %s is expected to end with %s", logDir, defaultLogDirname)
	}
}
