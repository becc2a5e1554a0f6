package logging

import (
	"fmt"
	"sync"
)

type Entry struct {
	Level string
	Name  string
	Msg   string
	Args  []any
}

// Arg returns the value logged under key, or nil.
func (e Entry) Arg(key string) any {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1]
		}
	}
	return nil
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s %v", e.Level, e.Name, e.Msg, e.Args)
}

// Recorder keeps every entry in memory so tests can assert on reported conditions.
type Recorder struct {
	mu      *sync.Mutex
	entries *[]Entry
	name    string
}

func NewRecorder() *Recorder {
	return &Recorder{mu: &sync.Mutex{}, entries: &[]Entry{}}
}

func (r *Recorder) Debug(msg string, args ...any) { r.add("debug", msg, args) }
func (r *Recorder) Info(msg string, args ...any)  { r.add("info", msg, args) }
func (r *Recorder) Warn(msg string, args ...any)  { r.add("warn", msg, args) }
func (r *Recorder) Error(msg string, args ...any) { r.add("error", msg, args) }

func (r *Recorder) Named(name string) Logger {
	full := name
	if r.name != "" {
		full = r.name + "." + name
	}
	return &Recorder{mu: r.mu, entries: r.entries, name: full}
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(*r.entries))
	copy(out, *r.entries)
	return out
}

// Find returns entries at level whose message equals msg.
func (r *Recorder) Find(level, msg string) []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == level && e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.entries = append(*r.entries, Entry{Level: level, Name: r.name, Msg: msg, Args: args})
}
