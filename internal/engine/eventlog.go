package engine

// LogEntry is one line of the player-facing event log.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// EventLog is the append-only, length-capped game log. Entries are kept
// newest first; the oldest entry falls off once the cap is reached.
type EventLog struct {
	entries []LogEntry
	cap     int
}

// NewEventLog creates a log bounded to capacity entries.
func NewEventLog(capacity int) *EventLog {
	if capacity < 1 {
		capacity = 100
	}
	return &EventLog{cap: capacity}
}

// Push prepends an entry, evicting the oldest past capacity.
func (l *EventLog) Push(timestamp, message string) {
	l.entries = append([]LogEntry{{Timestamp: timestamp, Message: message}}, l.entries...)
	if len(l.entries) > l.cap {
		l.entries = l.entries[:l.cap]
	}
}

// Entries returns a copy of the log, newest first.
func (l *EventLog) Entries() []LogEntry {
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *EventLog) Len() int { return len(l.entries) }
