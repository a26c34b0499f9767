package kanban

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/logging"
)

var log = logging.For("kanban")

// Load reads a boards file. A missing file is an empty collection.
func Load(path string) (*Collection, error) {
	timer := log.StartTimer("load boards")

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		timer.StopWithResult(true, "no boards file")
		return &Collection{}, nil
	}
	if err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, fmt.Errorf("failed to read boards file: %w", err)
	}

	var c Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		timer.StopWithResult(false, err.Error())
		return nil, fmt.Errorf("failed to parse boards file: %w", err)
	}
	c.fillDefaults(time.Now())
	timer.StopWithResult(true, fmt.Sprintf("%d boards, %d cards", len(c.Boards), c.CardCount()))
	return &c, nil
}

// fillDefaults repairs hand-edited files: missing ids, statuses and
// priorities get defaults.
func (c *Collection) fillDefaults(now time.Time) {
	c.Boards = dropNil(c.Boards)
	for _, b := range c.Boards {
		if b.ID == uuid.Nil {
			b.ID = uuid.New()
		}
		b.Cards = dropNil(b.Cards)
		for _, card := range b.Cards {
			if card.ID == uuid.Nil {
				card.ID = uuid.New()
			}
			if card.Status == "" {
				card.Status = StatusActive
			}
			if card.Priority == "" {
				card.Priority = PriorityLow
			}
			if card.Created.IsZero() {
				card.Created = now
			}
		}
	}
}

func dropNil[T any](items []*T) []*T {
	out := items[:0]
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Save writes c to path through a temporary file so a failed write leaves the
// previous file intact.
func (c *Collection) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode boards: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPerm); err != nil {
		return fmt.Errorf("failed to create boards directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write boards file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write boards file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), constants.FilePerm); err != nil {
		return fmt.Errorf("failed to set boards file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace boards file: %w", err)
	}
	log.Debug("saved %d boards to %s", len(c.Boards), path)
	return nil
}
