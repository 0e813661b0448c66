package dash

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"postdeck/cmd/postdeck/ui"
	"postdeck/internal/config"
	"postdeck/internal/dashboard"
	"postdeck/internal/logging"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case spinner.TickMsg:
		if m.ctrl.Busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case usersResultMsg:
		m.ctrl.ApplyUsers(msg.users, msg.err)
		items := make([]list.Item, len(msg.users))
		for i, u := range msg.users {
			items[i] = userItem{user: u}
		}
		return m, m.userList.SetItems(items)

	case postsResultMsg:
		if m.ctrl.ApplyPosts(msg.gen, msg.posts, msg.err) {
			m.postCursor = 0
		}
		return m, nil

	case commentsResultMsg:
		if m.ctrl.ApplyComments(msg.gen, msg.comments, msg.err) {
			m.commentsVP.SetContent(m.renderComments(msg.postID))
			m.commentsVP.GotoTop()
		}
		return m, nil

	case createResultMsg:
		m.ctrl.ApplyCreate(msg.post, msg.err)
		if msg.err == nil {
			// Draft cleared in the controller; mirror it in the widgets
			// and show the new post on its page.
			m.titleInput.Reset()
			m.bodyInput.Reset()
			m.postCursor = 0
			m.focus = focusPosts
		}
		return m, nil

	case configReloadedMsg:
		return m.handleConfigReload(config.Config(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := msg.Height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	usersWidth := msg.Width / 3
	if usersWidth < 20 {
		usersWidth = 20
	}
	postsWidth := msg.Width - usersWidth - 6
	if postsWidth < 20 {
		postsWidth = 20
	}

	m.userList.SetSize(usersWidth, contentHeight-2)
	m.titleInput.Width = postsWidth - 4
	m.bodyInput.SetWidth(postsWidth - 4)
	m.bodyInput.SetHeight(5)

	if !m.ready {
		m.commentsVP = viewportSized(postsWidth, contentHeight-4)
		m.ready = true
	} else {
		m.commentsVP.Width = postsWidth
		m.commentsVP.Height = contentHeight - 4
	}

	if m.renderer != nil {
		wrap := postsWidth - 4
		if wrap < 20 {
			wrap = 20
		}
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	}
	return m
}

// handleConfigReload applies a live config change: theme and page size take
// effect immediately, pagination re-clamps inside the controller.
func (m Model) handleConfigReload(cfg config.Config) (tea.Model, tea.Cmd) {
	logging.UI("config reloaded: page_size=%d theme=%s", cfg.PageSize, cfg.Theme)
	m.cfg = cfg
	m.styles = ui.NewStyles(ui.ThemeFromName(cfg.Theme))
	m.spin.Style = m.styles.Spinner
	m.ctrl.SetPageSize(cfg.PageSize)
	m.postCursor = clampCursor(m.postCursor, len(m.ctrl.VisiblePosts()))
	return m, m.waitForConfig()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global bindings first.
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		switch m.focus {
		case focusComments:
			m.ctrl.HideComments()
			m.focus = focusPosts
			return m, nil
		case focusForm:
			m.focus = focusPosts
			return m, nil
		default:
			if m.userList.FilterState() == list.Filtering {
				break // let the list cancel its own filter
			}
			return m, tea.Quit
		}
	case tea.KeyTab:
		// The form handles tab itself (title -> body); elsewhere it
		// cycles panes.
		if m.focus != focusForm && m.focus != focusComments {
			if m.focus == focusUsers {
				m.focus = focusPosts
			} else {
				m.focus = focusUsers
			}
			return m, nil
		}
	}

	switch m.focus {
	case focusUsers:
		return m.handleUsersKey(msg)
	case focusPosts:
		return m.handlePostsKey(msg)
	case focusForm:
		return m.handleFormKey(msg)
	case focusComments:
		return m.handleCommentsKey(msg)
	}
	return m, nil
}

func (m Model) handleUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter && m.userList.FilterState() != list.Filtering {
		item, ok := m.userList.SelectedItem().(userItem)
		if !ok {
			return m, nil
		}
		gen := m.ctrl.SelectUser(item.user)
		m.postCursor = 0
		m.focus = focusPosts
		return m, tea.Batch(m.spin.Tick, m.loadPosts(gen, item.user.ID))
	}

	var cmd tea.Cmd
	m.userList, cmd = m.userList.Update(msg)
	return m, cmd
}

func (m Model) handlePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.ctrl.VisiblePosts()

	switch msg.String() {
	case "up", "k":
		if m.postCursor > 0 {
			m.postCursor--
		}
		return m, nil

	case "down", "j":
		if m.postCursor < len(visible)-1 {
			m.postCursor++
		}
		return m, nil

	case "left", "h":
		if m.ctrl.Paginate(dashboard.Prev) {
			m.postCursor = 0
		}
		return m, nil

	case "right", "l":
		if m.ctrl.Paginate(dashboard.Next) {
			m.postCursor = 0
		}
		return m, nil

	case "enter", "c":
		if m.postCursor < len(visible) {
			post := visible[m.postCursor]
			gen := m.ctrl.BeginComments(post.ID)
			m.focus = focusComments
			m.commentsVP.SetContent("")
			return m, tea.Batch(m.spin.Tick, m.loadComments(gen, post.ID))
		}
		return m, nil

	case "n":
		// New post draft for the selected user.
		if _, ok := m.ctrl.Selected(); ok {
			m.focus = focusForm
			m.field = fieldTitle
			m.titleInput.Focus()
			m.bodyInput.Blur()
		}
		return m, nil

	case "r":
		// Re-fetch the selected user's posts; idempotent by design.
		if u, ok := m.ctrl.Selected(); ok {
			gen := m.ctrl.SelectUser(u)
			m.postCursor = 0
			return m, tea.Batch(m.spin.Tick, m.loadPosts(gen, u.ID))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		if m.field == fieldTitle {
			m.field = fieldBody
			m.titleInput.Blur()
			return m, m.bodyInput.Focus()
		}
		m.field = fieldTitle
		m.bodyInput.Blur()
		return m, m.titleInput.Focus()

	case tea.KeyEnter:
		if m.field == fieldTitle {
			// Enter in the title moves to the body, like in the form of
			// the original dashboard.
			m.field = fieldBody
			m.titleInput.Blur()
			return m, m.bodyInput.Focus()
		}

	case tea.KeyCtrlS:
		return m.submitDraft()
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.ctrl.SetDraftTitle(m.titleInput.Value())
	} else {
		m.bodyInput, cmd = m.bodyInput.Update(msg)
		m.ctrl.SetDraftBody(m.bodyInput.Value())
	}
	// Editing the draft dismisses the blocking validation prompt.
	m.validationErr = nil
	return m, cmd
}

// submitDraft validates and, when valid, dispatches the create. Validation
// failures block here: no request is issued and the form keeps its content.
func (m Model) submitDraft() (tea.Model, tea.Cmd) {
	np, err := m.ctrl.BeginCreate()
	if err != nil {
		m.validationErr = err
		return m, nil
	}
	m.validationErr = nil
	return m, tea.Batch(m.spin.Tick, m.submitPost(np))
}

func (m Model) handleCommentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.ctrl.HideComments()
		m.focus = focusPosts
		return m, nil
	}

	var cmd tea.Cmd
	m.commentsVP, cmd = m.commentsVP.Update(msg)
	return m, cmd
}
