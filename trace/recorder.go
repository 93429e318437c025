package trace

import "log"

// LogStore is the slice of the store a Recorder writes to.
type LogStore interface {
	WriteLog(name, category, message string) error
}

// Recorder fans agent events into the log store. Writes are best
// effort: a failing store must never stall or fail a trading run, so
// errors are logged and the entry dropped.
type Recorder struct {
	store LogStore
}

func NewRecorder(store LogStore) *Recorder {
	return &Recorder{store: store}
}

// Record writes one event under the agent's name.
func (r *Recorder) Record(name, category, message string) {
	if r.store == nil {
		return
	}
	if err := r.store.WriteLog(name, category, message); err != nil {
		log.Printf("trace: record %s/%s: %v", name, category, err)
	}
}

// RecordCorrelated writes one event keyed by correlation id. Malformed
// ids are dropped rather than misfiled under a garbage name.
func (r *Recorder) RecordCorrelated(corrID, category, message string) {
	name, ok := ExtractAgent(corrID)
	if !ok {
		log.Printf("trace: dropping event with malformed id %q", corrID)
		return
	}
	r.Record(name, category, message)
}

// Flush is a no-op; every Record call is already durable.
func (r *Recorder) Flush() {}

// Close is a no-op; the Recorder holds no resources of its own.
func (r *Recorder) Close() error { return nil }
