package notify

import "time"

// Notice is the payload delivered to sinks for one user-facing message.
type Notice struct {
	Source  string    `json:"source,omitempty"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// LevelError is the only level raised by the request pipeline.
const LevelError = "error"

// NewNotice constructs an error Notice stamped with the current time.
func NewNotice(source, message string) Notice {
	return Notice{
		Source:  source,
		Level:   LevelError,
		Message: message,
		At:      time.Now().UTC(),
	}
}
