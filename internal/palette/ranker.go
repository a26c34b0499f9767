package palette

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/logging"
)

var log = logging.For("palette")

// Field is the part of a card or board a query matched.
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldTags
	FieldComments
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldDescription:
		return "Description"
	case FieldTags:
		return "Tags"
	case FieldComments:
		return "Comments"
	}
	return "Unknown"
}

// Match is a board or card found by a query.
type Match struct {
	Text    string
	Field   Field
	BoardID uuid.UUID
	CardID  uuid.UUID // uuid.Nil for board matches
}

func newMatch(title string, field Field, boardID, cardID uuid.UUID) Match {
	return Match{
		Text:    title + " - Matched in " + field.String(),
		Field:   field,
		BoardID: boardID,
		CardID:  cardID,
	}
}

// Visible returns the text that fits a popup of the given width.
func (m Match) Visible(width int) string {
	return constants.TruncateWithWidth(m.Text, width-constants.PaletteInsetWidth)
}

// Ranker filters the catalog, boards and cards for a query. It remembers
// the last query and does nothing when asked to rank it again.
type Ranker struct {
	catalog []Action

	last   string
	ranked bool

	commands []Action
	cards    []Match
	boards   []Match
}

// NewRanker creates a ranker over the catalog for the given debug mode.
func NewRanker(debug bool) *Ranker {
	r := &Ranker{catalog: Catalog(debug)}
	r.commands = r.catalog
	return r
}

// SetDebug switches the catalog between normal and debug mode.
func (r *Ranker) SetDebug(debug bool) {
	r.catalog = Catalog(debug)
	r.Reset()
}

// Reset forgets the last query so the next Update always ranks.
func (r *Ranker) Reset() {
	r.last = ""
	r.ranked = false
	r.commands = r.catalog
	r.cards = nil
	r.boards = nil
}

// Update ranks query against the catalog and boards. It reports whether
// the results were recomputed.
func (r *Ranker) Update(query string, boards *kanban.Collection) bool {
	q := strings.ToLower(query)
	if r.ranked && q == r.last {
		return false
	}
	r.last = q
	r.ranked = true

	r.commands = rankCommands(r.catalog, q)
	r.cards, r.boards = nil, nil
	if utf8.RuneCountInString(q) > 1 && boards != nil {
		r.cards = matchCards(boards, q)
		r.boards = matchBoards(boards, q)
	}
	log.Trace("ranked %q: %d commands, %d cards, %d boards", q, len(r.commands), len(r.cards), len(r.boards))
	return true
}

// Query returns the last ranked query, lower-cased.
func (r *Ranker) Query() string { return r.last }

// Commands returns the matching actions, prefix matches first.
func (r *Ranker) Commands() []Action { return r.commands }

// Cards returns the matching cards in board order.
func (r *Ranker) Cards() []Match { return r.cards }

// Boards returns the matching boards.
func (r *Ranker) Boards() []Match { return r.boards }

func rankCommands(catalog []Action, q string) []Action {
	if q == "" {
		return catalog
	}
	var prefix, rest []Action
	for _, a := range catalog {
		name := strings.ToLower(a.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, a)
		case strings.Contains(name, q):
			rest = append(rest, a)
		}
	}
	if len(prefix)+len(rest) == 0 {
		return []Action{NoCommandsFound}
	}
	return append(prefix, rest...)
}

func contains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}

func anyContains(items []string, q string) bool {
	for _, s := range items {
		if contains(s, q) {
			return true
		}
	}
	return false
}

func matchCards(c *kanban.Collection, q string) []Match {
	var out []Match
	for _, b := range c.Boards {
		for _, card := range b.Cards {
			var field Field
			switch {
			case contains(card.Name, q):
				field = FieldName
			case contains(card.Description, q):
				field = FieldDescription
			case anyContains(card.Tags, q):
				field = FieldTags
			case anyContains(card.Comments, q):
				field = FieldComments
			default:
				continue
			}
			out = append(out, newMatch(card.Name, field, b.ID, card.ID))
		}
	}
	return out
}

func matchBoards(c *kanban.Collection, q string) []Match {
	var out []Match
	for _, b := range c.Boards {
		switch {
		case contains(b.Name, q):
			out = append(out, newMatch(b.Name, FieldName, b.ID, uuid.Nil))
		case contains(b.Description, q):
			out = append(out, newMatch(b.Name, FieldDescription, b.ID, uuid.Nil))
		}
	}
	return out
}
