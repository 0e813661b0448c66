// Package dash provides the interactive terminal dashboard for postdeck.
// The functionality is split across files in the usual way:
//   - model.go: types, messages, construction, Init (this file)
//   - update.go: the bubbletea update loop and key handling
//   - commands.go: tea.Cmd closures for remote calls
//   - view.go: rendering
//   - helpers.go: small formatting utilities
//
// All dashboard state lives in the embedded controller; this package only
// translates terminal events into controller operations and controller
// state into panes.
package dash

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"postdeck/cmd/postdeck/ui"
	"postdeck/internal/config"
	"postdeck/internal/dashboard"
	"postdeck/internal/placeholder"
)

// focusArea determines which pane receives key input.
type focusArea int

const (
	focusUsers focusArea = iota
	focusPosts
	focusForm
	focusComments // modal overlay while a post's comments are shown
)

// formField tracks which draft field is being edited.
type formField int

const (
	fieldTitle formField = iota
	fieldBody
)

// userItem adapts a User for the bubbles list.
type userItem struct {
	user placeholder.User
}

func (i userItem) Title() string       { return i.user.Name }
func (i userItem) Description() string { return fmt.Sprintf("@%s · %s", i.user.Username, i.user.Email) }
func (i userItem) FilterValue() string { return i.user.Name + " " + i.user.Username }

// Messages for tea updates
type (
	usersResultMsg struct {
		users []placeholder.User
		err   error
	}

	postsResultMsg struct {
		gen   uint64
		posts []placeholder.Post
		err   error
	}

	commentsResultMsg struct {
		gen      uint64
		postID   int
		comments []placeholder.Comment
		err      error
	}

	createResultMsg struct {
		post placeholder.Post
		err  error
	}

	configReloadedMsg config.Config
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	// Backend
	ctrl       *dashboard.Controller
	client     *placeholder.Client
	cfg        config.Config
	cfgUpdates <-chan config.Config

	// UI components
	styles     ui.Styles
	renderer   *glamour.TermRenderer
	userList   list.Model
	titleInput textinput.Model
	bodyInput  textarea.Model
	spin       spinner.Model
	commentsVP viewport.Model

	// Input state
	focus      focusArea
	field      formField
	postCursor int // index into the visible page slice

	// Validation failure blocking the last submit attempt, if any.
	validationErr error

	width  int
	height int
	ready  bool
}

// New builds the dashboard model. cfgUpdates may be nil when config
// watching is disabled.
func New(cfg config.Config, client *placeholder.Client, cfgUpdates <-chan config.Config) Model {
	styles := ui.NewStyles(ui.ThemeFromName(cfg.Theme))

	delegate := list.NewDefaultDelegate()
	ul := list.New(nil, delegate, 0, 0)
	ul.Title = "Users"
	ul.SetShowStatusBar(false)
	ul.SetFilteringEnabled(true)
	ul.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Placeholder = "Post title"
	ti.CharLimit = 200
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Post body"
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	return Model{
		ctrl:       dashboard.New(cfg.PageSize),
		client:     client,
		cfg:        cfg,
		cfgUpdates: cfgUpdates,
		styles:     styles,
		renderer:   renderer,
		userList:   ul,
		titleInput: ti,
		bodyInput:  ta,
		spin:       sp,
		focus:      focusUsers,
	}
}

// Init fires the one-time startup user fetch.
func (m Model) Init() tea.Cmd {
	m.ctrl.BeginLoadUsers()
	return tea.Batch(
		m.spin.Tick,
		textinput.Blink,
		m.loadUsers(),
		m.waitForConfig(),
	)
}

// Run starts the dashboard program.
func Run(cfg config.Config, client *placeholder.Client, cfgUpdates <-chan config.Config) error {
	p := tea.NewProgram(New(cfg, client, cfgUpdates), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
