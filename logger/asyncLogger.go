package logger

import (
	"sync"

	log_model "dormly/models/log"
	"dormly/types"

	"github.com/gammazero/workerpool"
	"gorm.io/gorm"
)

// LogWriter persists one request log row.
type LogWriter interface {
	Write(entry types.LogEntry) error
}

// GormLogWriter stores entries in the logs table.
type GormLogWriter struct {
	DB *gorm.DB
}

func (w GormLogWriter) Write(entry types.LogEntry) error {
	dbLog := log_model.Log{
		Method:          entry.Method,
		URL:             entry.URL,
		RequestBody:     entry.RequestBody,
		ResponseBody:    entry.ResponseBody,
		RequestHeaders:  entry.RequestHeaders,
		ResponseHeaders: entry.ResponseHeaders,
		StatusCode:      entry.StatusCode,
		UserID:          entry.UserID,
		DurationMs:      entry.DurationMs,
		CreatedAt:       entry.CreatedAt,
	}
	return w.DB.Create(&dbLog).Error
}

// AsyncLogger takes request logs off the request path. Entries are queued
// on a buffered channel and written by a small worker pool.
type AsyncLogger struct {
	writer  LogWriter
	channel chan types.LogEntry
	pool    *workerpool.WorkerPool
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsyncLogger(writer LogWriter, workers int) *AsyncLogger {
	if workers <= 0 {
		workers = 1
	}
	return &AsyncLogger{
		writer:  writer,
		channel: make(chan types.LogEntry, 100),
		pool:    workerpool.New(workers),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the queue until Close is called.
func (l *AsyncLogger) ProcessLog() {
	Info("Starting asynchronous request logger")
	defer close(l.done)

	for entry := range l.channel {
		entry := entry
		l.pool.Submit(func() {
			if err := l.writer.Write(entry); err != nil {
				Error("Failed to insert request log", err)
			}
		})
	}
	l.pool.StopWait()
}

// Log queues an entry. When the queue is full, or the logger is closed,
// the entry is dropped so a slow database never blocks a request.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		Warning("Request logger closed, dropping entry for " + entry.Method + " " + entry.URL)
		return
	}
	select {
	case l.channel <- entry:
	default:
		Warning("Request log queue full, dropping entry for " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for queued ones to be written.
// ProcessLog must be running. Later calls return immediately.
func (l *AsyncLogger) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.channel)
	l.mu.Unlock()

	<-l.done
}
