package mealplanner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RunLogger records the stages of a planning run.
type RunLogger interface {
	LogStage(stage StageLog) error
}

// NewRunLogFilePath returns a file path under dir named after the current time and the selection strategy.
func NewRunLogFilePath(dir, strategy string) string {
	return filepath.Join(dir, fmt.Sprintf(
		"%d.%s.json",
		time.Now().Unix(),
		strings.ReplaceAll(strings.ToLower(strategy), " ", "_"),
	))
}

// StageLog represents one stage of a planning run
type StageLog struct {
	RunID     string         `json:"run_id"`
	Stage     string         `json:"stage"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  time.Duration  `json:"duration_ns"`
	Details   map[string]any `json:"details,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// FileRunLogger accumulates stages and writes them as one document on Flush
type FileRunLogger struct {
	mu     sync.Mutex
	stages []StageLog
	writer io.Writer
}

func NewFileRunLogger(writer io.Writer) *FileRunLogger {
	return &FileRunLogger{
		stages: make([]StageLog, 0),
		writer: writer,
	}
}

// LogStage buffers the stage; nothing is written until Flush
func (l *FileRunLogger) LogStage(stage StageLog) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stages = append(l.stages, stage)
	return nil
}

// Flush writes all buffered stages to the writer and clears the buffer
func (l *FileRunLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"planning_run": map[string]any{
			"timestamp": time.Now(),
			"stages":    l.stages,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}

	l.stages = l.stages[:0]
	return nil
}

// NoOpRunLogger discards all stages
type NoOpRunLogger struct{}

func NewNoOpRunLogger() *NoOpRunLogger {
	return &NoOpRunLogger{}
}

func (NoOpRunLogger) LogStage(StageLog) error {
	return nil
}

// StdoutRunLogger writes each stage as a JSON line (for Lambda/CloudWatch)
type StdoutRunLogger struct {
	out io.Writer
}

func NewStdoutRunLogger() *StdoutRunLogger {
	return &StdoutRunLogger{out: os.Stdout}
}

func (l *StdoutRunLogger) LogStage(stage StageLog) error {
	data, err := json.Marshal(stage)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
