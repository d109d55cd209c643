package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	debugLog *log.Logger
	logMutex sync.Mutex
)

// InitLogging sets up leveled logging to stdout/stderr and a rotating file
// under logDir. Safe to call once at startup before any Log call.
func InitLogging(logDir string) {
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "sondeo.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	outWriter := io.MultiWriter(os.Stdout, rotator)
	errWriter := io.MultiWriter(os.Stderr, rotator)

	debugLog = log.New(outWriter, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(outWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(outWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errWriter, "ERROR: ", log.Ldate|log.Ltime)

	// Override Go's default log output as well.
	log.SetOutput(outWriter)
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func logAt(logger *log.Logger, format string, v ...interface{}) {
	if logger == nil {
		log.Printf(format, v...)
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	logger.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	logAt(debugLog, format, v...)
}

func Info(format string, v ...interface{}) {
	logAt(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	logAt(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	logAt(errorLog, format, v...)
}
