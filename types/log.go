package types

import "time"

// LogEntry is the in-flight form of a request log before it is persisted.
type LogEntry struct {
	Method       string
	URL          string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	CreatedAt    time.Time
}
