package log

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is a logging verbosity
type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// Logger is the leveled logger used by the renderer packages
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. The name shows up as the module of every record.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// String returns the lowercase level name
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Listener receives every record that passes the current level
type Listener func(level Level, module, message string)

var (
	listenersMu  sync.RWMutex
	listeners    = make(map[int]Listener)
	nextListener int
)

// Listen registers fn for all loggers and returns a function that removes it.
// fn runs on the logging goroutine and must not block.
func Listen(fn Listener) (stop func()) {
	listenersMu.Lock()
	id := nextListener
	nextListener++
	listeners[id] = fn
	listenersMu.Unlock()

	return func() {
		listenersMu.Lock()
		delete(listeners, id)
		listenersMu.Unlock()
	}
}

// listenerBackend forwards records to the registered listeners
type listenerBackend struct{}

func (listenerBackend) Log(level logging.Level, calldepth int, rec *logging.Record) error {
	listenersMu.RLock()
	defer listenersMu.RUnlock()
	if len(listeners) == 0 {
		return nil
	}

	message := rec.Message()
	for _, fn := range listeners {
		fn(fromLogging(level), rec.Module, message)
	}
	return nil
}

func fromLogging(level logging.Level) Level {
	switch level {
	case logging.DEBUG:
		return Debug
	case logging.INFO:
		return Info
	case logging.NOTICE:
		return Notice
	case logging.WARNING:
		return Warning
	default:
		return Error
	}
}

// SetSink redirects all loggers to sink. The current level is kept.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.MultiLogger(backendWithFormatter, listenerBackend{})
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	}

	leveledBackend.SetLevel(loggerLevel, "")
}

func init() {
	// Rendered images may go to stdout, so logs go to stderr
	SetSink(os.Stderr)
	SetLevel(Notice)
}
