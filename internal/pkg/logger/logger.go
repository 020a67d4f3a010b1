package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"
)

type Logger struct {
	output io.Writer
}

type logEntry struct {
	Timestamp string      `json:"timestamp"`
	Level     string      `json:"level"`
	Message   string      `json:"message"`
	File      string      `json:"file,omitempty"`
	Line      int         `json:"line,omitempty"`
	Fields    interface{} `json:"fields,omitempty"`
}

func NewLogger() *Logger {
	return &Logger{output: os.Stdout}
}

func NewLoggerWithOutput(w io.Writer) *Logger {
	return &Logger{output: w}
}

func (l *Logger) write(level, msg string, fields ...interface{}) {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		file = "unknown"
		line = 0
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
		File:      file,
		Line:      line,
	}

	if len(fields) > 0 && len(fields)%2 == 0 {
		fieldMap := make(map[string]interface{}, len(fields)/2)
		for i := 0; i < len(fields); i += 2 {
			if key, ok := fields[i].(string); ok {
				fieldMap[key] = fields[i+1]
			}
		}
		entry.Fields = fieldMap
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: marshal failed: %v\n", err)
		return
	}
	fmt.Fprintln(l.output, string(data))
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.write("DEBUG", msg, fields...)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.write("INFO", msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.write("WARN", msg, fields...)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.write("ERROR", msg, fields...)
}

func (l *Logger) Fatal(msg string, fields ...interface{}) {
	l.write("FATAL", msg, fields...)
	os.Exit(1)
}
