// Package logger builds the process-wide zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const logFilePerm = 0o664

// New returns a timestamped logger writing to w, defaulting to stdout.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewFile appends to the file at path in addition to stdout.
func NewFile(path string) (zerolog.Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFilePerm)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return New(zerolog.MultiLevelWriter(os.Stdout, zerolog.SyncWriter(f))), nil
}
