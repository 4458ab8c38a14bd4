package config

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const logFileName = "moderation-api.log"

// InitLogging points the standard logger at stdout plus a file under dir.
// When the file cannot be opened it falls back to stdout alone. The returned
// file, if any, must be closed by the caller.
func InitLogging(dir string) (*os.File, io.Writer) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create logs directory: %v", err)
	}

	logFile, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: Failed to open log file: %v", err)
		log.SetOutput(os.Stdout)
		return nil, os.Stdout
	}

	w := io.MultiWriter(os.Stdout, logFile)
	log.SetOutput(w)
	return logFile, w
}
