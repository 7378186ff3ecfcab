package service

import (
    "bytes"
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "sync"
    "time"
)

// TimestampLayout is local wall-clock ISO-8601 with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000"

type LogEntry struct {
    Timestamp string `json:"timestamp"`
    Prompt    string `json:"prompt"`
    Response  string `json:"response"`
}

// Sink records a completed interaction.
type Sink interface {
    Log(prompt, response string) error
}

// InteractionLog appends one JSON line per interaction to a file.
type InteractionLog struct {
    mu   sync.Mutex
    path string
    now  func() time.Time
}

func NewInteractionLog(path string) *InteractionLog {
    return &InteractionLog{path: path, now: time.Now}
}

func (l *InteractionLog) Log(prompt, response string) error {
    var buf bytes.Buffer
    enc := json.NewEncoder(&buf)
    enc.SetEscapeHTML(false)
    entry := LogEntry{Timestamp: l.now().Format(TimestampLayout), Prompt: prompt, Response: response}
    if err := enc.Encode(entry); err != nil { return fmt.Errorf("encode log entry: %w", err) }

    l.mu.Lock()
    defer l.mu.Unlock()
    if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil { return fmt.Errorf("create log dir: %w", err) }
    f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil { return fmt.Errorf("open log: %w", err) }
    if _, err := f.Write(buf.Bytes()); err != nil {
        _ = f.Close()
        return fmt.Errorf("append log: %w", err)
    }
    return f.Close()
}

func (l *InteractionLog) Path() string { return l.path }
