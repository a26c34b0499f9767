package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/donghojung/kan/internal/constants"
	"github.com/donghojung/kan/internal/kanban"
	"github.com/donghojung/kan/internal/palette"
	"github.com/donghojung/kan/internal/tui/textarea"
)

type formField int

const (
	fieldName formField = iota
	fieldDescription
	fieldTags
	fieldCount
)

// FormResult is what a key did to a form.
type FormResult int

const (
	FormContinue FormResult = iota
	FormCancelled
	FormSubmitted
)

// CardForm edits the name, description and tags of a card. Tags are typed
// as a comma separated list.
type CardForm struct {
	card    *kanban.Card // nil while creating
	inputs  [fieldCount]*textarea.Model
	focus   formField
	allTags []kanban.TagCount

	suggestions []string
	width       int
	colors      ThemeColors
}

// NewCardForm creates a form for card, or for a new card when card is nil.
// allTags feeds the tag suggestions.
func NewCardForm(card *kanban.Card, allTags []kanban.TagCount, opts EditorOptions) *CardForm {
	var name, desc, tags string
	if card != nil {
		name, desc, tags = editable(card.Name), editable(card.Description), strings.Join(card.Tags, ", ")
	}
	f := &CardForm{
		card:    card,
		allTags: allTags,
		colors:  NewThemeColors(opts.IsDark),
	}
	f.inputs[fieldName] = newInput(name, true, opts)
	f.inputs[fieldName].Placeholder = "Card name"
	f.inputs[fieldDescription] = newInput(desc, false, opts)
	f.inputs[fieldDescription].Placeholder = "Description"
	f.inputs[fieldDescription].ShowLineNumbers(true)
	f.inputs[fieldTags] = newInput(tags, true, opts)
	f.inputs[fieldTags].Placeholder = "tag, another tag"
	for _, in := range f.inputs {
		in.Jump(textarea.End, textarea.End)
	}
	f.SetSize(60, 6)
	f.setFocus(fieldName)
	return f
}

// SetSize sets the form width and the description height.
func (f *CardForm) SetSize(width, descHeight int) {
	f.width = width
	for _, in := range f.inputs {
		in.SetWidth(width - 4)
		in.SetHeight(1)
	}
	f.inputs[fieldDescription].SetHeight(max(descHeight, 1))
}

// Card returns the card being edited, or nil for a new card.
func (f *CardForm) Card() *kanban.Card {
	return f.card
}

// Focused returns the focused field index.
func (f *CardForm) Focused() formField {
	return f.focus
}

// Input returns the text box of a field.
func (f *CardForm) Input(field formField) *textarea.Model {
	return f.inputs[field]
}

// Suggestions returns the tag completions for the tag being typed.
func (f *CardForm) Suggestions() []string {
	return f.suggestions
}

func (f *CardForm) setFocus(field formField) {
	f.focus = (field + fieldCount) % fieldCount
	for i, in := range f.inputs {
		if formField(i) == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	f.updateSuggestions()
}

// splitTags splits the tag field, trimming blanks.
func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (f *CardForm) updateSuggestions() {
	f.suggestions = nil
	if f.focus != fieldTags {
		return
	}
	value := f.inputs[fieldTags].Value()
	i := strings.LastIndex(value, ",")
	current := strings.TrimSpace(value[i+1:])
	if current == "" {
		return
	}
	f.suggestions = palette.TagSuggestions(f.allTags, current, splitTags(value[:i+1]))
	// the tag being typed is complete already
	if len(f.suggestions) == 1 && strings.EqualFold(f.suggestions[0], current) {
		f.suggestions = nil
	}
}

func (f *CardForm) completeTag() bool {
	if len(f.suggestions) == 0 {
		return false
	}
	in := f.inputs[fieldTags]
	value := in.Value()
	prefix := value[:strings.LastIndex(value, ",")+1]
	if prefix != "" {
		prefix += " "
	}
	in.SetValue(prefix + f.suggestions[0] + ", ")
	in.Jump(0, textarea.End)
	f.updateSuggestions()
	return true
}

// HandleKey processes a key for the focused field.
func (f *CardForm) HandleKey(msg tea.KeyMsg) FormResult {
	switch msg.String() {
	case "esc":
		return FormCancelled
	case "ctrl+s":
		return FormSubmitted
	case "tab":
		if f.focus == fieldTags && f.completeTag() {
			return FormContinue
		}
		f.setFocus(f.focus + 1)
		return FormContinue
	case "shift+tab":
		f.setFocus(f.focus - 1)
		return FormContinue
	case "enter":
		if f.focus == fieldTags {
			return FormSubmitted
		}
		if f.focus == fieldName {
			f.setFocus(fieldDescription)
			return FormContinue
		}
	}
	f.inputs[f.focus].Update(msg)
	f.updateSuggestions()
	return FormContinue
}

// Apply writes the form into its card, creating one on board when the form
// was opened for a new card. It returns the card.
func (f *CardForm) Apply(board *kanban.Board, now time.Time) *kanban.Card {
	name := strings.TrimSpace(f.inputs[fieldName].Value())
	desc := f.inputs[fieldDescription].Value()
	card := f.card
	if card == nil {
		card = kanban.NewCard(name, desc, now)
		board.AddCard(card)
		f.card = card
	} else {
		if name != "" {
			card.Name = name
		}
		card.Description = orNotSet(desc)
	}
	card.Tags = nil
	for _, tag := range splitTags(f.inputs[fieldTags].Value()) {
		card.AddTag(tag)
	}
	return card
}

func orNotSet(s string) string {
	if strings.TrimSpace(s) == "" {
		return constants.FieldNotSet
	}
	return s
}

// editable hides the "Not Set" placeholder from the text boxes.
func editable(s string) string {
	if s == constants.FieldNotSet {
		return ""
	}
	return s
}

// View renders the form.
func (f *CardForm) View() string {
	c := f.colors
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(c.Accent)
	labelStyle := lipgloss.NewStyle().Foreground(c.TextDim)
	focusedLabel := lipgloss.NewStyle().Foreground(c.Accent).Bold(true)
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c.BorderNormal).
		Padding(0, 1).
		Width(f.width - 2)
	hintStyle := lipgloss.NewStyle().Foreground(c.TextDim)

	title := "New Card"
	if f.card != nil {
		title = "Edit Card"
	}
	labels := [fieldCount]string{"Name", "Description", "Tags"}

	parts := []string{titleStyle.Render(title)}
	for i, in := range f.inputs {
		label := labelStyle
		box := boxStyle
		if formField(i) == f.focus {
			label = focusedLabel
			box = box.BorderForeground(c.BorderFocused)
		}
		parts = append(parts, label.Render(labels[i]), box.Render(in.View()))
	}
	if len(f.suggestions) > 0 {
		parts = append(parts, hintStyle.Render("tab: "+strings.Join(f.suggestions, "  ")))
	}
	parts = append(parts, hintStyle.Render("tab next · ctrl+s save · esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
