// Package logging routes the standard logger to a rotating file in debug mode
// Both binaries own the terminal, so log output never goes to stdout or stderr
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the default log directory, relative to the working directory
const Dir = "logs"

// MaxSize is the size past which an existing log is rotated on startup
const MaxSize = 10 * 1024 * 1024

// Setup opens dir/name for appending and makes it the standard logger's output
// Without debug, or when the file cannot be opened, output is discarded and nil is returned
// The caller closes the returned file
func Setup(dir, name string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	f, err := open(dir, name)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("%s: logging started (pid %d)", strings.TrimSuffix(name, filepath.Ext(name)), os.Getpid())
	return f
}

func open(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxSize {
		os.Rename(path, rotatedName(path, time.Now()))
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// rotatedName inserts a timestamp before the extension: ambience.log -> ambience-20260102-150405.log
func rotatedName(path string, at time.Time) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), at.Format("20060102-150405"), ext)
}
