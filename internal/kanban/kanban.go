// Package kanban is the board and card model and its YAML file format.
package kanban

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/donghojung/kan/internal/constants"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrInvalidStatus   = errors.New("invalid card status")
	ErrInvalidPriority = errors.New("invalid card priority")
)

// Status is the lifecycle state of a card.
type Status string

const (
	StatusActive   Status = "Active"
	StatusComplete Status = "Complete"
	StatusStale    Status = "Stale"
)

// Statuses returns all statuses in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusComplete, StatusStale}
}

// UnmarshalText accepts a status name, case-insensitively.
func (s *Status) UnmarshalText(text []byte) error {
	for _, v := range Statuses() {
		if strings.EqualFold(string(v), string(text)) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, text)
}

// Priority is the importance of a card.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities returns all priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// UnmarshalText accepts a priority name, case-insensitively.
func (p *Priority) UnmarshalText(text []byte) error {
	for _, v := range Priorities() {
		if strings.EqualFold(string(v), string(text)) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidPriority, text)
}

// Card is a single task on a board.
type Card struct {
	ID          uuid.UUID  `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Tags        []string   `yaml:"tags,omitempty"`
	Comments    []string   `yaml:"comments,omitempty"`
	Priority    Priority   `yaml:"priority"`
	Status      Status     `yaml:"status"`
	DueDate     *time.Time `yaml:"due_date,omitempty"`
	Created     time.Time  `yaml:"created"`
}

// NewCard creates an active, low priority card. Empty fields are shown as
// "Not Set".
func NewCard(name, description string, created time.Time) *Card {
	return &Card{
		ID:          uuid.New(),
		Name:        orNotSet(name),
		Description: orNotSet(description),
		Priority:    PriorityLow,
		Status:      StatusActive,
		Created:     created,
	}
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.FieldNotSet
	}
	return s
}

// AddTag adds tag unless the card already has it, ignoring case. It reports
// whether the tag was added.
func (c *Card) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || c.HasTag(tag) {
		return false
	}
	c.Tags = append(c.Tags, tag)
	return true
}

// HasTag reports whether the card has tag, ignoring case.
func (c *Card) HasTag(tag string) bool {
	return slices.ContainsFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

// RemoveTag removes tag, ignoring case.
func (c *Card) RemoveTag(tag string) bool {
	n := len(c.Tags)
	c.Tags = slices.DeleteFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
	return len(c.Tags) != n
}

// AddComment appends a non-empty comment.
func (c *Card) AddComment(comment string) bool {
	if strings.TrimSpace(comment) == "" {
		return false
	}
	c.Comments = append(c.Comments, comment)
	return true
}

// Board is a named list of cards.
type Board struct {
	ID          uuid.UUID `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Cards       []*Card   `yaml:"cards,omitempty"`
}

// NewBoard creates an empty board.
func NewBoard(name, description string) *Board {
	if strings.TrimSpace(name) == "" {
		name = constants.DefaultBoardName
	}
	return &Board{ID: uuid.New(), Name: name, Description: orNotSet(description)}
}

// AddCard appends c.
func (b *Board) AddCard(c *Card) {
	b.Cards = append(b.Cards, c)
}

// Card returns the card with id.
func (b *Board) Card(id uuid.UUID) (*Card, error) {
	for _, c := range b.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// RemoveCard removes the card with id.
func (b *Board) RemoveCard(id uuid.UUID) error {
	i := slices.IndexFunc(b.Cards, func(c *Card) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	b.Cards = slices.Delete(b.Cards, i, i+1)
	return nil
}

// CardsWithStatus returns the cards in s, in board order.
func (b *Board) CardsWithStatus(s Status) []*Card {
	var out []*Card
	for _, c := range b.Cards {
		if c.Status == s {
			out = append(out, c)
		}
	}
	return out
}

// Collection is every board the user has.
type Collection struct {
	Boards []*Board `yaml:"boards"`
}

// AddBoard appends b.
func (c *Collection) AddBoard(b *Board) {
	c.Boards = append(c.Boards, b)
}

// Board returns the board with id.
func (c *Collection) Board(id uuid.UUID) (*Board, error) {
	for _, b := range c.Boards {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, id)
}

// RemoveBoard removes the board with id and its cards.
func (c *Collection) RemoveBoard(id uuid.UUID) error {
	i := slices.IndexFunc(c.Boards, func(b *Board) bool { return b.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, id)
	}
	c.Boards = slices.Delete(c.Boards, i, i+1)
	return nil
}

// FindCard searches every board for the card with id.
func (c *Collection) FindCard(id uuid.UUID) (*Board, *Card, error) {
	for _, b := range c.Boards {
		if card, err := b.Card(id); err == nil {
			return b, card, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}

// CardCount returns the number of cards across all boards.
func (c *Collection) CardCount() int {
	n := 0
	for _, b := range c.Boards {
		n += len(b.Cards)
	}
	return n
}

// TagCount is how many cards carry a tag.
type TagCount struct {
	Tag   string
	Count int
}

// CalculateTags counts lower-cased tags across all cards, most used first and
// alphabetical among equal counts. Empty tags are skipped.
func (c *Collection) CalculateTags() []TagCount {
	counts := make(map[string]int)
	for _, b := range c.Boards {
		for _, card := range b.Cards {
			for _, tag := range card.Tags {
				if tag == "" {
					continue
				}
				counts[strings.ToLower(tag)]++
			}
		}
	}
	tags := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(tags, func(a, b TagCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return tags
}
