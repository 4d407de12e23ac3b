package session

import (
	"github.com/jober-app/go-alimtalk-client/contacts"
	"github.com/jober-app/go-alimtalk-client/spaces"
	"github.com/jober-app/go-alimtalk-client/templates"
)

// User identifies the logged-in account.
type User struct {
	UserID   int    `json:"userId"`
	Username string `json:"username"`
}

// Severity classifies a snackbar notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notification is the single-slot transient user message. A new notification
// replaces any pending one; it has no server correlate.
type Notification struct {
	Open     bool     `json:"open"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// State is the full session state. Invariants:
//
//   - LoggedIn == true exactly when User != nil.
//   - After a successful FetchSpaces with a non-empty result, CurrentSpace is
//     non-nil and its id is present in Spaces.
//   - Every space-scoped field (Templates, Contacts, AllTags, SelectedTags,
//     FilteredContacts, SelectedContactIDs) is owned by CurrentSpace and is
//     cleared atomically when its identity changes.
type State struct {
	LoggedIn bool  `json:"isLoggedIn"`
	User     *User `json:"user"`

	Spaces            []spaces.Space `json:"spaces"`
	SortedSpaces      []spaces.Space `json:"sortedSpaces"`
	CurrentSpace      *spaces.Space  `json:"currentSpace"`
	SpacesLoading     bool           `json:"spacesLoading"`
	SpacesInitialized bool           `json:"spacesInitialized"`
	APIError          string         `json:"apiError"`

	Templates        []templates.Template `json:"templates"`
	TemplatesLoading bool                 `json:"templatesLoading"`

	Contacts           []contacts.Contact `json:"contacts"`
	AllTags            []string           `json:"allTags"`
	SelectedTags       []string           `json:"selectedTags"`
	FilteredContacts   []contacts.Contact `json:"filteredContacts"`
	SelectedContactIDs []int              `json:"selectedContactIds"`

	Snackbar *Notification `json:"snackbar"`
}

// initialState is the logged-out, empty shape. Logout resets to it
// unconditionally.
func initialState() State {
	return State{
		Spaces:             []spaces.Space{},
		SortedSpaces:       []spaces.Space{},
		Templates:          []templates.Template{},
		Contacts:           []contacts.Contact{},
		AllTags:            []string{},
		SelectedTags:       []string{},
		FilteredContacts:   []contacts.Contact{},
		SelectedContactIDs: []int{},
	}
}

// snapshotCopy returns a copy safe to hand out: slices are duplicated and
// pointers point at fresh values, so readers never alias store internals.
func (s State) snapshotCopy() State {
	out := s
	out.Spaces = append([]spaces.Space{}, s.Spaces...)
	out.SortedSpaces = append([]spaces.Space{}, s.SortedSpaces...)
	out.Templates = append([]templates.Template{}, s.Templates...)
	out.Contacts = append([]contacts.Contact{}, s.Contacts...)
	out.AllTags = append([]string{}, s.AllTags...)
	out.SelectedTags = append([]string{}, s.SelectedTags...)
	out.FilteredContacts = append([]contacts.Contact{}, s.FilteredContacts...)
	out.SelectedContactIDs = append([]int{}, s.SelectedContactIDs...)
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.CurrentSpace != nil {
		sp := *s.CurrentSpace
		out.CurrentSpace = &sp
	}
	if s.Snackbar != nil {
		n := *s.Snackbar
		out.Snackbar = &n
	}
	return out
}
