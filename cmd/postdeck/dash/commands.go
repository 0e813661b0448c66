package dash

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"postdeck/internal/placeholder"
)

// Remote calls run as tea.Cmd closures so the update loop never blocks.
// Each result message carries the controller generation it was dispatched
// under; the controller drops results from superseded dispatches.

func (m Model) loadUsers() tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		users, err := client.Users(ctx)
		return usersResultMsg{users: users, err: err}
	}
}

func (m Model) loadPosts(gen uint64, userID int) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		posts, err := client.PostsByUser(ctx, userID)
		return postsResultMsg{gen: gen, posts: posts, err: err}
	}
}

func (m Model) loadComments(gen uint64, postID int) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		comments, err := client.CommentsByPost(ctx, postID)
		return commentsResultMsg{gen: gen, postID: postID, comments: comments, err: err}
	}
}

func (m Model) submitPost(np placeholder.NewPost) tea.Cmd {
	client, timeout := m.client, m.cfg.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		post, err := client.CreatePost(ctx, np)
		return createResultMsg{post: post, err: err}
	}
}

// waitForConfig delivers the next live config reload, if watching is on.
func (m Model) waitForConfig() tea.Cmd {
	if m.cfgUpdates == nil {
		return nil
	}
	ch := m.cfgUpdates
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg(cfg)
	}
}
