// Package logging provides the in-memory, lossy log sink shared by every
// goroutine of the app.
//
// Producers write into a small hot ring under a short lock; the UI tick
// drains it into a large cold ring with DrainToCold. When producers outrun
// the tick, the hot ring overwrites its oldest records and the drain appends
// a warn record telling how many were lost.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/donghojung/kan/internal/ringbuf"
)

const (
	// DefaultHotDepth is the capacity of the producer-side ring.
	DefaultHotDepth = 1000
	// DefaultColdDepth is the capacity of the accumulated history.
	DefaultColdDepth = 10000
	// DefaultTarget is used by the package-level wrappers.
	DefaultTarget = "kan"
	// lossTarget tags the synthetic record emitted by DrainToCold.
	lossTarget = "logging"
)

// Options configures a Logger. Zero values select the defaults.
type Options struct {
	HotDepth     int
	ColdDepth    int
	DefaultLevel Level
	// Output, if set, receives every drained record as a formatted line.
	Output io.Writer
	// Metrics, if set, is updated on every drain.
	Metrics *Metrics
	// Clock stamps records; defaults to time.Now.
	Clock func() time.Time
}

// DrainStats describes the outcome of one DrainToCold call.
type DrainStats struct {
	Total int // records pushed into the hot ring since the previous drain
	Kept  int // records that survived and were copied to the cold ring
}

// Lost returns how many records were overwritten before the drain.
func (s DrainStats) Lost() int {
	return s.Total - s.Kept
}

// Logger is the process-wide sink. The hot ring, the cold ring, the fast
// filter and the target table each have their own lock, and no method holds
// two of them at once.
type Logger struct {
	hotMu    sync.Mutex
	hot      *ringbuf.Buffer[Record]
	selected int

	filterMu sync.RWMutex
	filter   fastFilter

	slowMu       sync.Mutex
	targets      *TargetLevels
	defaultLevel Level
	hotDepth     int

	coldMu    sync.Mutex
	cold      *ringbuf.Buffer[Record]
	totalSeen int
	output    io.Writer
	outputErr error

	metrics *Metrics
	clock   func() time.Time
}

// NewLogger creates a Logger.
func NewLogger(opts Options) *Logger {
	if opts.HotDepth <= 0 {
		opts.HotDepth = DefaultHotDepth
	}
	if opts.ColdDepth <= 0 {
		opts.ColdDepth = DefaultColdDepth
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Logger{
		hot:          ringbuf.New[Record](opts.HotDepth),
		filter:       fastFilter{levels: make(map[uint64]Level), defaultLevel: opts.DefaultLevel},
		targets:      newTargetLevels(),
		defaultLevel: opts.DefaultLevel,
		hotDepth:     opts.HotDepth,
		cold:         ringbuf.New[Record](opts.ColdDepth),
		output:       opts.Output,
		metrics:      opts.Metrics,
		clock:        opts.Clock,
	}
}

// Enabled reports whether a record for target at level would be kept.
// It only reads the fast filter.
func (l *Logger) Enabled(target string, level Level) bool {
	l.filterMu.RLock()
	threshold := l.filter.threshold(target)
	l.filterMu.RUnlock()
	return threshold.Admits(level)
}

// Log records r if its target and level are enabled. The record is stamped
// with the current time on insertion.
func (l *Logger) Log(r Record) {
	if !l.Enabled(r.Target, r.Level) {
		return
	}
	r.Time = l.clock()

	l.hotMu.Lock()
	l.hot.Push(r)
	l.selected = l.hot.Len() - 1
	l.hotMu.Unlock()
}

// Logf formats and records a message. Formatting is skipped when the record
// would be filtered out.
func (l *Logger) Logf(target string, level Level, format string, args ...interface{}) {
	if !l.Enabled(target, level) {
		return
	}
	l.Log(Record{Level: level, Target: target, Message: fmt.Sprintf(format, args...)})
}

// SetDefaultLevel changes the threshold for targets without their own level.
func (l *Logger) SetDefaultLevel(level Level) {
	l.filterMu.Lock()
	l.filter.defaultLevel = level
	l.filterMu.Unlock()

	l.slowMu.Lock()
	l.defaultLevel = level
	l.slowMu.Unlock()
}

// DefaultLevel returns the threshold for targets without their own level.
func (l *Logger) DefaultLevel() Level {
	l.slowMu.Lock()
	defer l.slowMu.Unlock()
	return l.defaultLevel
}

// SetTargetLevel sets the threshold for one target.
func (l *Logger) SetTargetLevel(target string, level Level) {
	l.slowMu.Lock()
	l.targets.Set(target, level)
	l.slowMu.Unlock()

	l.filterMu.Lock()
	l.filter.levels[hashTarget(target)] = level
	l.filterMu.Unlock()
}

// TargetLevel returns the threshold that applies to target according to the
// authoritative table.
func (l *Logger) TargetLevel(target string) Level {
	l.slowMu.Lock()
	defer l.slowMu.Unlock()
	if level, ok := l.targets.Get(target); ok {
		return level
	}
	return l.defaultLevel
}

// Targets lists the per-target thresholds sorted by target.
func (l *Logger) Targets() []TargetLevel {
	l.slowMu.Lock()
	defer l.slowMu.Unlock()
	return l.targets.List()
}

// Generation returns the change counter of the target table.
func (l *Logger) Generation() uint64 {
	l.slowMu.Lock()
	defer l.slowMu.Unlock()
	return l.targets.Generation()
}

// SetHotDepth sets the capacity of the hot ring installed by the next drain.
func (l *Logger) SetHotDepth(depth int) {
	if depth <= 0 {
		return
	}
	l.slowMu.Lock()
	l.hotDepth = depth
	l.slowMu.Unlock()
}

// DrainToCold moves everything in the hot ring to the cold ring. Producers
// keep writing into a fresh hot ring while the copy runs. If the hot ring
// overwrote records, a warn record reporting the loss follows the kept ones.
func (l *Logger) DrainToCold() DrainStats {
	l.hotMu.Lock()
	empty := l.hot.TotalWritten() == 0
	l.hotMu.Unlock()
	if empty {
		return DrainStats{}
	}

	l.slowMu.Lock()
	depth := l.hotDepth
	l.slowMu.Unlock()
	fresh := ringbuf.New[Record](depth)

	l.hotMu.Lock()
	swapped := l.hot
	l.hot = fresh
	l.selected = 0
	l.hotMu.Unlock()

	stats := DrainStats{Total: swapped.TotalWritten(), Kept: swapped.Len()}
	kept := swapped.Drain()

	l.coldMu.Lock()
	defer l.coldMu.Unlock()

	for _, r := range kept {
		l.appendCold(r)
	}
	if stats.Total > stats.Kept && len(kept) > 0 {
		l.appendCold(Record{
			Time:    kept[len(kept)-1].Time,
			Level:   LevelWarn,
			Target:  lossTarget,
			Message: fmt.Sprintf("%d events lost, %d recorded out of %d", stats.Lost(), stats.Kept, stats.Total),
		})
	}
	l.totalSeen += stats.Total
	l.metrics.observeDrain(stats, l.cold.Len())
	return stats
}

// appendCold must be called with coldMu held.
func (l *Logger) appendCold(r Record) {
	l.cold.Push(r)
	if l.output == nil || l.outputErr != nil {
		return
	}
	if _, err := io.WriteString(l.output, r.Format()+"\n"); err != nil {
		l.outputErr = fmt.Errorf("failed to write log output: %w", err)
	}
}

// SnapshotHot returns a copy of the hot ring, oldest first.
func (l *Logger) SnapshotHot() []Record {
	l.hotMu.Lock()
	defer l.hotMu.Unlock()
	return l.hot.Snapshot()
}

// SelectedIndex returns the hot ring index the live pane highlights. It always
// points at the most recently pushed record, or 0 when the ring is empty.
func (l *Logger) SelectedIndex() int {
	l.hotMu.Lock()
	defer l.hotMu.Unlock()
	return l.selected
}

// Cold returns a copy of the accumulated history, oldest first.
func (l *Logger) Cold() []Record {
	l.coldMu.Lock()
	defer l.coldMu.Unlock()
	return l.cold.Snapshot()
}

// TotalEventsSeen returns the number of records accepted across all drains.
func (l *Logger) TotalEventsSeen() int {
	l.coldMu.Lock()
	defer l.coldMu.Unlock()
	return l.totalSeen
}

// OutputError returns the first error hit while writing to Options.Output.
// Writing stops after the first failure.
func (l *Logger) OutputError() error {
	l.coldMu.Lock()
	defer l.coldMu.Unlock()
	return l.outputErr
}

// Flush exists for facade compatibility; records are flushed by DrainToCold.
func (l *Logger) Flush() {}

// Close drains pending records and closes the output if it is closable.
func (l *Logger) Close() error {
	l.DrainToCold()

	l.coldMu.Lock()
	defer l.coldMu.Unlock()
	if c, ok := l.output.(io.Closer); ok {
		l.output = nil
		return c.Close()
	}
	return nil
}

// OpenFile opens path for appending log lines.
func OpenFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
