package logging

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// TargetLevels is the authoritative target -> threshold table. Every change
// bumps Generation so views can detect edits without diffing the map.
type TargetLevels struct {
	levels     map[string]Level
	generation uint64
}

// TargetLevel is one row of the table.
type TargetLevel struct {
	Target string
	Level  Level
}

func newTargetLevels() *TargetLevels {
	return &TargetLevels{levels: make(map[string]Level)}
}

// Set stores level for target. Setting the level a target already has does
// not bump the generation.
func (t *TargetLevels) Set(target string, level Level) {
	if cur, ok := t.levels[target]; ok && cur == level {
		return
	}
	t.levels[target] = level
	t.generation++
}

// Get returns the threshold for target, if one is set.
func (t *TargetLevels) Get(target string) (Level, bool) {
	level, ok := t.levels[target]
	return level, ok
}

// Generation returns the change counter.
func (t *TargetLevels) Generation() uint64 {
	return t.generation
}

// List returns the table sorted by target name.
func (t *TargetLevels) List() []TargetLevel {
	out := make([]TargetLevel, 0, len(t.levels))
	for target, level := range t.levels {
		out = append(out, TargetLevel{Target: target, Level: level})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out
}

// fastFilter mirrors TargetLevels keyed by the target hash so the producer
// path never compares strings.
type fastFilter struct {
	levels       map[uint64]Level
	defaultLevel Level
}

func hashTarget(target string) uint64 {
	return xxhash.Sum64String(target)
}

func (f *fastFilter) threshold(target string) Level {
	if level, ok := f.levels[hashTarget(target)]; ok {
		return level
	}
	return f.defaultLevel
}
