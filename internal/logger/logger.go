package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
)

// Log levels
const (
	LevelError = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

var (
	Info    *log.Logger
	Debug   *log.Logger
	Warning *log.Logger
	Error   *log.Logger

	// LogLevel controls which messages are emitted
	LogLevel = LevelInfo

	useColors = isTerminal(os.Stdout)

	// outputs remembers the writers passed to Initialize so color changes keep them
	outputs [4]io.Writer
	mu      sync.Mutex
)

// Initialize sets up the loggers with the specified outputs. Nil writers fall
// back to stdout, or stderr for errors.
func Initialize(infoHandle, debugHandle, warningHandle, errorHandle io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if infoHandle == nil {
		infoHandle = os.Stdout
	}
	if debugHandle == nil {
		debugHandle = os.Stdout
	}
	if warningHandle == nil {
		warningHandle = os.Stdout
	}
	if errorHandle == nil {
		errorHandle = os.Stderr
	}
	outputs = [4]io.Writer{infoHandle, debugHandle, warningHandle, errorHandle}

	Info = newLogger(infoHandle, "INFO: ", colorBlue)
	Debug = newLogger(debugHandle, "DEBUG: ", colorPurple)
	Warning = newLogger(warningHandle, "WARNING: ", colorYellow)
	Error = newLogger(errorHandle, "ERROR: ", colorRed)
}

func newLogger(w io.Writer, prefix, color string) *log.Logger {
	if useColors {
		prefix = color + prefix + colorReset
	}
	return log.New(w, prefix, log.Ldate|log.Ltime|log.Lshortfile)
}

// SetOutput sends every level to w. Colors are turned off unless w is a terminal.
func SetOutput(w io.Writer) {
	if f, ok := w.(*os.File); !ok || !isTerminal(f) {
		useColors = false
	}
	Initialize(w, w, w, w)
}

// EnableColors enables colored output
func EnableColors() {
	useColors = true
	reinitialize()
}

// DisableColors disables colored output
func DisableColors() {
	useColors = false
	reinitialize()
}

func reinitialize() {
	mu.Lock()
	current := outputs
	mu.Unlock()
	Initialize(current[0], current[1], current[2], current[3])
}

// SetLevel sets the logging level
func SetLevel(level int) {
	if level >= LevelError && level <= LevelDebug {
		LogLevel = level
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func Infof(format string, v ...interface{}) {
	if LogLevel >= LevelInfo {
		Info.Output(2, fmt.Sprintf(format, v...))
	}
}

func Debugf(format string, v ...interface{}) {
	if LogLevel >= LevelDebug {
		Debug.Output(2, fmt.Sprintf(format, v...))
	}
}

func Warningf(format string, v ...interface{}) {
	if LogLevel >= LevelWarning {
		Warning.Output(2, fmt.Sprintf(format, v...))
	}
}

func Errorf(format string, v ...interface{}) {
	if LogLevel >= LevelError {
		Error.Output(2, fmt.Sprintf(format, v...))
	}
}

func init() {
	Initialize(nil, nil, nil, nil)
}
