// Package notify decouples user-facing notifications from state mutation.
// Stores and services report what changed; a Notifier decides how to
// surface it.
package notify

import (
	"log"
	"sync"
)

type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the process log. It stands in for a
// client-side toast layer.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Success(message string) {
	log.Printf("notify: %s", message)
}

func (LogNotifier) Error(message string) {
	log.Printf("notify error: %s", message)
}

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.successes))
	copy(out, r.successes)
	return out
}

func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}
