package logging

import (
	"fmt"
	"time"
)

// Record is one log event as stored in the hot and cold rings.
type Record struct {
	Time    time.Time
	Level   Level
	Target  string
	Message string
}

// timestampLayout matches the file log format used across the app.
const timestampLayout = "06-01-02 15:04:05.0"

// Format renders the record as a single log-file line without a trailing newline.
func (r Record) Format() string {
	return fmt.Sprintf("[%s] [%-5s] [%s] %s", r.Time.Format(timestampLayout), r.Level.Name(), r.Target, r.Message)
}
