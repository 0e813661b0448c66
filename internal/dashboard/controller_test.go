package dashboard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/placeholder"
)

func makePosts(userID, n int) []placeholder.Post {
	posts := make([]placeholder.Post, n)
	for i := range posts {
		posts[i] = placeholder.Post{
			ID:     i + 1,
			UserID: userID,
			Title:  fmt.Sprintf("post %d", i+1),
			Body:   "body",
		}
	}
	return posts
}

func selectWithPosts(t *testing.T, c *Controller, u placeholder.User, posts []placeholder.Post) {
	t.Helper()
	gen := c.SelectUser(u)
	require.True(t, c.ApplyPosts(gen, posts, nil))
}

func TestLoadUsers(t *testing.T) {
	c := New(5)

	c.BeginLoadUsers()
	assert.True(t, c.UsersOp().Loading())
	assert.True(t, c.Busy())

	users := []placeholder.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Ben"}}
	c.ApplyUsers(users, nil)

	assert.False(t, c.Busy())
	assert.Equal(t, StatusReady, c.UsersOp().State)
	assert.Empty(t, cmp.Diff(users, c.Users()))
}

func TestLoadUsersFailure(t *testing.T) {
	c := New(5)
	c.BeginLoadUsers()
	c.ApplyUsers(nil, errors.New("network down"))

	// Loading always clears; the list stays empty; the error is scoped.
	assert.False(t, c.Busy())
	assert.Empty(t, c.Users())
	assert.True(t, c.UsersOp().Failed())
	require.Error(t, c.Err())
}

func TestSelectUserScopesPosts(t *testing.T) {
	c := New(5)
	ann := placeholder.User{ID: 1, Name: "Ann"}
	selectWithPosts(t, c, ann, makePosts(1, 3))

	for _, p := range c.Posts() {
		assert.Equal(t, ann.ID, p.UserID)
	}
	got, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, ann, got)
}

func TestSelectUserReplacesWholesale(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1, Name: "Ann"}, makePosts(1, 7))

	// Viewing comments first, to prove selection clears them.
	cgen := c.BeginComments(2)
	require.True(t, c.ApplyComments(cgen, []placeholder.Comment{{ID: 9, PostID: 2}}, nil))
	_, viewing := c.ViewedPost()
	require.True(t, viewing)

	selectWithPosts(t, c, placeholder.User{ID: 2, Name: "Ben"}, makePosts(2, 2))

	assert.Len(t, c.Posts(), 2)
	assert.Equal(t, 1, c.Page())
	assert.Empty(t, c.Comments())
	_, viewing = c.ViewedPost()
	assert.False(t, viewing)
}

func TestStalePostsResultDiscarded(t *testing.T) {
	c := New(5)
	oldGen := c.SelectUser(placeholder.User{ID: 1, Name: "Ann"})
	newGen := c.SelectUser(placeholder.User{ID: 2, Name: "Ben"})

	// The fetch for Ann resolves after Ben was selected: it must lose.
	assert.False(t, c.ApplyPosts(oldGen, makePosts(1, 4), nil))
	assert.Empty(t, c.Posts())
	assert.True(t, c.PostsOp().Loading())

	require.True(t, c.ApplyPosts(newGen, makePosts(2, 2), nil))
	assert.Len(t, c.Posts(), 2)
	assert.Equal(t, 2, c.Posts()[0].UserID)
}

func TestPostsFailureLeavesListEmpty(t *testing.T) {
	c := New(5)
	gen := c.SelectUser(placeholder.User{ID: 1})
	require.True(t, c.ApplyPosts(gen, nil, errors.New("timeout")))

	assert.Empty(t, c.Posts())
	assert.True(t, c.PostsOp().Failed())
	assert.Equal(t, 1, c.Page())
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name      string
		posts     int
		wantPages int
	}{
		{name: "empty", posts: 0, wantPages: 1},
		{name: "partial page", posts: 3, wantPages: 1},
		{name: "exact page", posts: 5, wantPages: 1},
		{name: "two pages", posts: 7, wantPages: 2},
		{name: "three pages", posts: 11, wantPages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(5)
			selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, tt.posts))
			assert.Equal(t, tt.wantPages, c.PageCount())
		})
	}
}

func TestPaginationScenario(t *testing.T) {
	// users = [Ann], posts fetch returns 7 posts -> page 1 shows posts[0..4],
	// next moves to page 2 showing posts[5..6], next again is a no-op.
	c := New(5)
	c.BeginLoadUsers()
	c.ApplyUsers([]placeholder.User{{ID: 1, Name: "Ann"}}, nil)

	posts := makePosts(1, 7)
	selectWithPosts(t, c, c.Users()[0], posts)

	assert.Equal(t, 1, c.Page())
	assert.Empty(t, cmp.Diff(posts[0:5], c.VisiblePosts()))

	require.True(t, c.Paginate(Next))
	assert.Equal(t, 2, c.Page())
	assert.Empty(t, cmp.Diff(posts[5:7], c.VisiblePosts()))

	assert.False(t, c.Paginate(Next), "next on last page must be a no-op")
	assert.Equal(t, 2, c.Page())
}

func TestPaginatePrevNoopOnFirstPage(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 7))

	assert.False(t, c.Paginate(Prev))
	assert.Equal(t, 1, c.Page())
}

func TestPageClampedWhenPageCountShrinks(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 12))
	require.True(t, c.Paginate(Next))
	require.True(t, c.Paginate(Next))
	require.Equal(t, 3, c.Page())

	// Growing the page size shrinks the page count; the current page must
	// clamp back into range.
	c.SetPageSize(10)
	assert.Equal(t, 2, c.PageCount())
	assert.Equal(t, 2, c.Page())
	assert.Len(t, c.VisiblePosts(), 2)

	// Re-fetching the same user resets to page 1 outright.
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 6))
	assert.Equal(t, 1, c.Page())
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name    string
		selectU bool
		title   string
		body    string
		wantErr error
	}{
		{name: "no user selected", selectU: false, title: "t", body: "b", wantErr: ErrNoUserSelected},
		{name: "empty title", selectU: true, title: "", body: "b", wantErr: ErrEmptyTitle},
		{name: "whitespace title", selectU: true, title: "   ", body: "b", wantErr: ErrEmptyTitle},
		{name: "empty body", selectU: true, title: "t", body: "", wantErr: ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(5)
			if tt.selectU {
				selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 2))
			}
			c.SetDraftTitle(tt.title)
			c.SetDraftBody(tt.body)

			before := len(c.Posts())
			_, err := c.BeginCreate()
			require.ErrorIs(t, err, tt.wantErr)

			// Blocking validation: no posts mutation, no in-flight create,
			// draft preserved for correction.
			assert.Len(t, c.Posts(), before)
			assert.False(t, c.CreateOp().Loading())
			assert.Equal(t, tt.title, c.Draft().Title)
		})
	}
}

func TestCreatePostSuccess(t *testing.T) {
	c := New(5)
	ann := placeholder.User{ID: 1, Name: "Ann"}
	selectWithPosts(t, c, ann, makePosts(1, 3))

	c.SetDraftTitle("fresh")
	c.SetDraftBody("content")

	np, err := c.BeginCreate()
	require.NoError(t, err)
	assert.Equal(t, ann.ID, np.UserID)
	assert.True(t, c.CreateOp().Loading())

	// Sandbox echo with a bogus id; the controller overrides it.
	c.ApplyCreate(placeholder.Post{ID: 101, UserID: np.UserID, Title: np.Title, Body: np.Body}, nil)

	require.NotEmpty(t, c.Posts())
	assert.Equal(t, "fresh", c.Posts()[0].Title, "new post must land at index 0")
	assert.Len(t, c.Posts(), 4)
	assert.Equal(t, Draft{}, c.Draft(), "draft must reset on success")
	assert.Equal(t, StatusReady, c.CreateOp().State)
}

func TestCreatePostIDsMonotonic(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 3))

	var ids []int
	for i := 0; i < 3; i++ {
		c.SetDraftTitle(fmt.Sprintf("t%d", i))
		c.SetDraftBody("b")
		np, err := c.BeginCreate()
		require.NoError(t, err)
		c.ApplyCreate(placeholder.Post{UserID: np.UserID, Title: np.Title, Body: np.Body}, nil)
		ids = append(ids, c.Posts()[0].ID)
	}

	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "client-assigned ids must be strictly increasing")
	}
}

func TestCreatePostFailureLeavesStateUnchanged(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 3))
	c.SetDraftTitle("t")
	c.SetDraftBody("b")

	_, err := c.BeginCreate()
	require.NoError(t, err)
	c.ApplyCreate(placeholder.Post{}, errors.New("network down"))

	assert.Len(t, c.Posts(), 3)
	assert.Equal(t, "t", c.Draft().Title, "draft survives a failed create")
	assert.True(t, c.CreateOp().Failed())
}

func TestCommentsReplaceNeverMerge(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 3))

	gen := c.BeginComments(1)
	require.True(t, c.ApplyComments(gen, []placeholder.Comment{{ID: 1, PostID: 1}, {ID: 2, PostID: 1}}, nil))
	postID, ok := c.ViewedPost()
	require.True(t, ok)
	assert.Equal(t, 1, postID)
	assert.Len(t, c.Comments(), 2)

	gen = c.BeginComments(2)
	require.True(t, c.ApplyComments(gen, []placeholder.Comment{{ID: 7, PostID: 2}}, nil))
	postID, _ = c.ViewedPost()
	assert.Equal(t, 2, postID)
	require.Len(t, c.Comments(), 1)
	assert.Equal(t, 2, c.Comments()[0].PostID, "only the new post's comments remain visible")
}

func TestStaleCommentsDiscarded(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 3))

	oldGen := c.BeginComments(1)
	newGen := c.BeginComments(2)

	assert.False(t, c.ApplyComments(oldGen, []placeholder.Comment{{ID: 1, PostID: 1}}, nil))
	require.True(t, c.ApplyComments(newGen, []placeholder.Comment{{ID: 2, PostID: 2}}, nil))
	assert.Equal(t, 2, c.Comments()[0].PostID)
}

func TestHideComments(t *testing.T) {
	c := New(5)
	selectWithPosts(t, c, placeholder.User{ID: 1}, makePosts(1, 1))

	gen := c.BeginComments(1)
	require.True(t, c.ApplyComments(gen, []placeholder.Comment{{ID: 1, PostID: 1}}, nil))

	c.HideComments()
	assert.Empty(t, c.Comments())
	_, viewing := c.ViewedPost()
	assert.False(t, viewing)

	// The dismissed fetch generation is orphaned too.
	assert.False(t, c.ApplyComments(gen, []placeholder.Comment{{ID: 1, PostID: 1}}, nil))
}

func TestErrScopedPerOperation(t *testing.T) {
	c := New(5)
	c.BeginLoadUsers()
	c.ApplyUsers([]placeholder.User{{ID: 1}}, nil)

	gen := c.SelectUser(placeholder.User{ID: 1})
	require.True(t, c.ApplyPosts(gen, nil, errors.New("posts down")))
	require.Error(t, c.Err())

	// A later successful comments fetch must not mask the posts failure.
	cgen := c.BeginComments(1)
	require.True(t, c.ApplyComments(cgen, nil, nil))
	require.Error(t, c.Err())

	// Retrying the posts fetch clears its scoped error.
	gen = c.SelectUser(placeholder.User{ID: 1})
	require.True(t, c.ApplyPosts(gen, makePosts(1, 1), nil))
	assert.NoError(t, c.Err())
}
