package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/df07/go-sppm/pkg/log"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Module    string    `json:"module"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// NewConsoleListener returns a log listener that queues records on
// consoleChan. Records are dropped while the channel is full.
func NewConsoleListener(consoleChan chan<- ConsoleMessage) log.Listener {
	return func(level log.Level, module, message string) {
		if consoleChan == nil {
			return
		}
		select {
		case consoleChan <- ConsoleMessage{
			Message:   message,
			Module:    module,
			Timestamp: time.Now(),
			Level:     level.String(),
		}:
		default:
		}
	}
}

// streamConsole forwards log records to the client as console events. Every
// connected render receives all records. The returned function stops the
// stream and returns once nothing more will be sent on sseEventChan.
func (s *Server) streamConsole(ctx context.Context, sseEventChan chan<- SSEEvent) (stop func()) {
	consoleChan := make(chan ConsoleMessage, 50)
	stopListening := log.Listen(NewConsoleListener(consoleChan))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range consoleChan {
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
			default:
				// Channel full, skip message to avoid blocking
			}
		}
	}()

	return func() {
		stopListening()
		close(consoleChan)
		<-done
	}
}
