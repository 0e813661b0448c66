package dash

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 3
	footerHeight = 2
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var right string
	switch m.focus {
	case focusComments:
		right = m.renderCommentsPane()
	case focusForm:
		right = m.renderFormPane()
	default:
		right = m.renderPostsPane()
	}

	left := m.paneStyle(m.focus == focusUsers).Render(m.userList.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	style := m.styles.Pane
	if focused {
		style = style.BorderForeground(m.styles.Theme.Accent)
	}
	return style
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" postdeck ")

	var status string
	switch {
	case m.ctrl.Busy():
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spin.View(), " ", m.styles.Muted.Render("Loading..."))
	case m.ctrl.Err() != nil:
		status = m.styles.Error.Render("Error: " + m.ctrl.Err().Error())
	default:
		status = m.styles.Success.Render("Ready")
	}

	scope := ""
	if u, ok := m.ctrl.Selected(); ok {
		scope = m.styles.Badge.Render(u.Name)
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", scope, "  ", status)
	return lipgloss.JoinVertical(lipgloss.Left, line, m.styles.RenderDivider(m.width))
}

func (m Model) renderPostsPane() string {
	var sb strings.Builder

	if _, ok := m.ctrl.Selected(); !ok {
		sb.WriteString(m.styles.Subtitle.Render("Select a user to load their posts."))
		return m.paneStyle(m.focus == focusPosts).Render(sb.String())
	}

	if m.ctrl.PostsOp().Failed() {
		sb.WriteString(m.styles.Error.Render("Posts unavailable: " + m.ctrl.PostsOp().Err.Error()))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Muted.Render("Press r to retry."))
		return m.paneStyle(m.focus == focusPosts).Render(sb.String())
	}

	visible := m.ctrl.VisiblePosts()
	if len(visible) == 0 && !m.ctrl.PostsOp().Loading() {
		sb.WriteString(m.styles.Subtitle.Render("No posts yet. Press n to write one."))
		return m.paneStyle(m.focus == focusPosts).Render(sb.String())
	}

	sb.WriteString(m.styles.Title.Render("Posts"))
	sb.WriteString("\n\n")
	for i, p := range visible {
		line := fmt.Sprintf("#%d  %s", p.ID, truncate(p.Title, 60))
		if i == m.postCursor && m.focus == focusPosts {
			sb.WriteString(m.styles.SelectedRow.Render(line))
		} else {
			sb.WriteString(m.styles.Body.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"Page %d/%d · %d posts", m.ctrl.Page(), m.ctrl.PageCount(), len(m.ctrl.Posts()))))

	return m.paneStyle(m.focus == focusPosts).Render(sb.String())
}

func (m Model) renderFormPane() string {
	var sb strings.Builder

	u, _ := m.ctrl.Selected()
	sb.WriteString(m.styles.Title.Render("New post"))
	sb.WriteString(m.styles.Muted.Render(" for " + u.Name))
	sb.WriteString("\n\n")
	sb.WriteString(m.titleInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.bodyInput.View())
	sb.WriteString("\n")

	if m.validationErr != nil {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render(m.validationErr.Error()))
		sb.WriteString("\n")
	}
	if m.ctrl.CreateOp().Failed() {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render("Create failed: " + m.ctrl.CreateOp().Err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("Tab: switch field · Ctrl+S: submit · Esc: back"))

	return m.paneStyle(true).Render(sb.String())
}

func (m Model) renderCommentsPane() string {
	var sb strings.Builder

	postID, _ := m.ctrl.ViewedPost()
	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Comments on #%d", postID)))
	sb.WriteString("\n")

	switch {
	case m.ctrl.CommentsOp().Loading():
		sb.WriteString(m.styles.Muted.Render("Loading comments..."))
	case m.ctrl.CommentsOp().Failed():
		sb.WriteString(m.styles.Error.Render("Comments unavailable: " + m.ctrl.CommentsOp().Err.Error()))
	default:
		sb.WriteString(m.commentsVP.View())
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("q/Esc: close · ↑/↓: scroll"))

	return m.paneStyle(true).Render(sb.String())
}

// renderComments builds the markdown shown in the comments viewport.
func (m Model) renderComments(postID int) string {
	comments := m.ctrl.Comments()
	if len(comments) == 0 {
		return m.styles.Subtitle.Render("No comments on this post.")
	}

	var md strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&md, "### %s\n", c.Name)
		fmt.Fprintf(&md, "_%s_\n\n", c.Email)
		md.WriteString(c.Body)
		md.WriteString("\n\n---\n\n")
	}

	return m.safeRenderMarkdown(md.String())
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			// If glamour panics, return plain text
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) renderFooter() string {
	var help string
	switch m.focus {
	case focusUsers:
		help = "Enter: select user · Tab: posts · /: filter · Esc: quit"
	case focusPosts:
		help = "↑/↓: move · ←/→: page · Enter: comments · n: new post · r: refresh · Tab: users"
	case focusForm:
		help = "Tab: field · Ctrl+S: submit · Esc: back"
	case focusComments:
		help = "↑/↓: scroll · q/Esc: close"
	}
	return m.styles.Footer.Render(help)
}
