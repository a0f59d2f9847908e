package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// Logger writes the messages of a single subsystem to its Backend.
type Logger struct {
	lvl uint32 // atomic Level
	tag string
	b   *Backend
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32(&l.lvl))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32(&l.lvl, uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.b
}

// Tracef formats message according to format specifier and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, params ...interface{}) {
	l.writef(LevelTrace, format, params...)
}

// Debugf formats message according to format specifier and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.writef(LevelDebug, format, params...)
}

// Infof formats message according to format specifier and writes to log with LevelInfo.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.writef(LevelInfo, format, params...)
}

// Warnf formats message according to format specifier and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.writef(LevelWarn, format, params...)
}

// Errorf formats message according to format specifier and writes to log with LevelError.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.writef(LevelError, format, params...)
}

// Criticalf formats message according to format specifier and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, params ...interface{}) {
	l.writef(LevelCritical, format, params...)
}

// writef formats message according to format specifier and writes to log
// with the given level.
func (l *Logger) writef(logLevel Level, format string, params ...interface{}) {
	if logLevel < l.Level() || logLevel >= LevelOff {
		return
	}
	l.write(logLevel, fmt.Sprintf(format, params...))
}

func (l *Logger) write(logLevel Level, message string) {
	t := time.Now()

	var file string
	var line int
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line = callsite(l.b.flag)
	}

	buf := make([]byte, 0, normalLogSize)
	buf = formatHeader(buf, t, logLevel.String(), l.tag, file, line)
	buf = append(buf, message...)
	if len(message) == 0 || message[len(message)-1] != '\n' {
		buf = append(buf, '\n')
	}
	l.b.write(logEntry{log: buf, level: logLevel})
}

const normalLogSize = 512

// calldepth is the number of frames between callsite and the code that
// called Tracef, Debugf, Infof, Warnf, Errorf or Criticalf. These are the
// only entry points into writef.
const calldepth = 4

func callsite(flag uint32) (string, int) {
	_, file, line, ok := runtime.Caller(calldepth)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		file = filepath.Base(file)
	}
	return file, line
}

// formatHeader writes a log header of the form
// "2006-01-02 15:04:05.000 [LVL] TAG: " and, when file is set, "file:line: ".
func formatHeader(buf []byte, t time.Time, lvl, tag string, file string, line int) []byte {
	buf = t.AppendFormat(buf, "2006-01-02 15:04:05.000")
	buf = append(buf, " ["...)
	buf = append(buf, lvl...)
	buf = append(buf, "] "...)
	buf = append(buf, tag...)
	if file != "" {
		buf = append(buf, ' ')
		buf = append(buf, file...)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(line), 10)
	}
	buf = append(buf, ": "...)
	return buf
}
