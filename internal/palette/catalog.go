// Package palette ranks command palette results: the fixed action catalog
// and the boards and cards that match the typed query.
package palette

import (
	"cmp"
	"slices"

	"github.com/donghojung/kan/internal/constants"
)

// ActionID identifies a palette action independently of its display name.
type ActionID string

const (
	ActionChangeCardStatus   ActionID = "change-card-status"
	ActionChangeCardPriority ActionID = "change-card-priority"
	ActionChangeDateFormat   ActionID = "change-date-format"
	ActionChangeTheme        ActionID = "change-theme"
	ActionChangeView         ActionID = "change-view"
	ActionClearFilter        ActionID = "clear-filter"
	ActionConfigure          ActionID = "configure"
	ActionCreateTheme        ActionID = "create-theme"
	ActionToggleDebug        ActionID = "toggle-debug"
	ActionFilterByTag        ActionID = "filter-by-tag"
	ActionHelp               ActionID = "help"
	ActionLoadCloud          ActionID = "load-cloud"
	ActionLoadLocal          ActionID = "load-local"
	ActionLogin              ActionID = "login"
	ActionLogout             ActionID = "logout"
	ActionMainMenu           ActionID = "main-menu"
	ActionNewBoard           ActionID = "new-board"
	ActionNewCard            ActionID = "new-card"
	ActionQuit               ActionID = "quit"
	ActionResetPassword      ActionID = "reset-password"
	ActionResetUI            ActionID = "reset-ui"
	ActionSave               ActionID = "save"
	ActionSignUp             ActionID = "sign-up"
	ActionSync               ActionID = "sync"

	// ActionNone is the placeholder shown when nothing matches.
	ActionNone ActionID = "none"
)

// Action is an entry of the command palette.
type Action struct {
	ID          ActionID
	Name        string
	Description string
	debugOnly   bool
}

var actions = []Action{
	{ID: ActionChangeCardStatus, Name: "Change Current Card Status", Description: "Move the selected card to another status"},
	{ID: ActionChangeCardPriority, Name: "Change Current Card Priority", Description: "Set the priority of the selected card"},
	{ID: ActionChangeDateFormat, Name: "Change Date Format", Description: "Choose how dates are displayed"},
	{ID: ActionChangeTheme, Name: "Change Theme", Description: "Switch the color theme"},
	{ID: ActionChangeView, Name: "Change View", Description: "Change how many boards and cards are shown"},
	{ID: ActionClearFilter, Name: "Clear Filter", Description: "Show all cards again"},
	{ID: ActionConfigure, Name: "Configure", Description: "Open the configuration menu"},
	{ID: ActionCreateTheme, Name: "Create a Theme", Description: "Build a custom theme"},
	{ID: ActionToggleDebug, Name: "Toggle Debug Panel", Description: "Show or hide the log panel", debugOnly: true},
	{ID: ActionFilterByTag, Name: "Filter by Tag", Description: "Show only cards with a tag"},
	{ID: ActionHelp, Name: "Open Help Menu", Description: "List key bindings"},
	{ID: ActionLoadCloud, Name: "Load a Save (Cloud)", Description: "Restore boards from a cloud save"},
	{ID: ActionLoadLocal, Name: "Load a Save (Local)", Description: "Restore boards from a local save"},
	{ID: ActionLogin, Name: "Login", Description: "Sign in to sync boards"},
	{ID: ActionLogout, Name: "Logout", Description: "Sign out"},
	{ID: ActionMainMenu, Name: "Open Main Menu", Description: "Go to the main menu"},
	{ID: ActionNewBoard, Name: "New Board", Description: "Create a board"},
	{ID: ActionNewCard, Name: "New Card", Description: "Create a card on the current board"},
	{ID: ActionQuit, Name: "Quit", Description: "Exit kan"},
	{ID: ActionResetPassword, Name: "Reset Password", Description: "Reset the account password"},
	{ID: ActionResetUI, Name: "Reset UI", Description: "Restore the default layout"},
	{ID: ActionSave, Name: "Save Kanban State", Description: "Write boards to disk"},
	{ID: ActionSignUp, Name: "Sign Up", Description: "Create an account"},
	{ID: ActionSync, Name: "Sync Local Data", Description: "Upload local boards to the cloud"},
}

// NoCommandsFound is the single result of a query that matches no action.
var NoCommandsFound = Action{ID: ActionNone, Name: constants.NoCommandsFound}

// Catalog returns the actions in alphabetical order. The debug panel toggle
// is only listed in debug mode.
func Catalog(debug bool) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if a.debugOnly && !debug {
			continue
		}
		out = append(out, a)
	}
	slices.SortStableFunc(out, func(a, b Action) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Lookup returns the action with id.
func Lookup(id ActionID) (Action, bool) {
	for _, a := range actions {
		if a.ID == id {
			return a, true
		}
	}
	return Action{}, false
}
