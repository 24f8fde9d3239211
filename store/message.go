package store

import "errors"

// ServerMessager is implemented by errors that carry a message from the remote.
type ServerMessager interface {
	ServerMessage() string
}

// MessageOf returns the remote's message when err carries one, otherwise fallback.
func MessageOf(err error, fallback string) string {
	var sm ServerMessager
	if errors.As(err, &sm) {
		if msg := sm.ServerMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
