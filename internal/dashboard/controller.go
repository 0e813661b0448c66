// Package dashboard holds the view-state controller behind the postdeck UI.
// The controller is a plain synchronous state machine: the UI layer starts
// an operation (Begin*), dispatches the matching remote call however it
// likes, and feeds the result back (Apply*). All invariants about
// selection, pagination, and staleness live here so they can be tested
// without a terminal or a network.
package dashboard

import (
	"errors"
	"strings"

	"postdeck/internal/logging"
	"postdeck/internal/placeholder"
)

// DefaultPageSize is the fixed number of posts shown per page.
const DefaultPageSize = 5

// Validation failures for CreatePost. These block the submission before any
// request is made; they are not transport errors.
var (
	ErrNoUserSelected = errors.New("select a user before creating a post")
	ErrEmptyTitle     = errors.New("post title must not be empty")
	ErrEmptyBody      = errors.New("post body must not be empty")
)

// Status is the lifecycle of a single remote operation.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// Operation tracks one remote operation's state and its scoped error.
// Errors are scoped per operation rather than collapsed into one shared
// string, so a later unrelated success cannot mask an earlier failure.
type Operation struct {
	State Status
	Err   error
}

func (o *Operation) begin() {
	o.State = StatusLoading
	o.Err = nil
}

func (o *Operation) finish(err error) {
	if err != nil {
		o.State = StatusFailed
		o.Err = err
		return
	}
	o.State = StatusReady
	o.Err = nil
}

// Loading reports whether the operation is in flight.
func (o Operation) Loading() bool { return o.State == StatusLoading }

// Failed reports whether the operation's last run failed.
func (o Operation) Failed() bool { return o.State == StatusFailed }

// Draft is the in-progress post form, cleared on successful submission.
type Draft struct {
	Title string
	Body  string
}

// Direction selects which way Paginate moves.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Controller sequences the dependent fetches (users -> posts -> comments /
// create) and derives the paginated posts view. It is not safe for
// concurrent use; the UI event loop is the single writer.
type Controller struct {
	pageSize int

	users   []placeholder.User
	usersOp Operation

	selected    placeholder.User
	hasSelected bool

	posts    []placeholder.Post
	postsOp  Operation
	postsGen uint64

	comments    []placeholder.Comment
	commentsOp  Operation
	commentsGen uint64
	viewedPost  int
	hasViewed   bool

	draft    Draft
	createOp Operation

	page   int
	nextID int
}

// New creates a controller. A non-positive pageSize selects DefaultPageSize.
func New(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		pageSize: pageSize,
		page:     1,
		// Seeded above the sandbox id range; AdoptPosts raises it further
		// if a fetched post carries a higher id.
		nextID: 101,
	}
}

// =============================================================================
// USERS
// =============================================================================

// BeginLoadUsers marks the startup user fetch as in flight.
func (c *Controller) BeginLoadUsers() {
	c.usersOp.begin()
}

// ApplyUsers records the result of the user fetch. On failure the list
// stays empty; the loading state always clears.
func (c *Controller) ApplyUsers(users []placeholder.User, err error) {
	c.usersOp.finish(err)
	if err != nil {
		logging.UI("users load failed: %v", err)
		c.users = nil
		return
	}
	c.users = users
}

// Users returns the fetched user list.
func (c *Controller) Users() []placeholder.User { return c.users }

// UsersOp exposes the users operation state.
func (c *Controller) UsersOp() Operation { return c.usersOp }

// =============================================================================
// USER SELECTION AND POSTS
// =============================================================================

// SelectUser replaces the selection and starts a posts fetch for it. The
// previous posts, viewed post, and comments are cleared immediately; the
// returned generation must be echoed back to ApplyPosts so late responses
// from a superseded selection are discarded. Re-selecting the same user
// simply re-fetches.
func (c *Controller) SelectUser(u placeholder.User) uint64 {
	c.selected = u
	c.hasSelected = true
	c.posts = nil
	c.page = 1
	c.clearComments()
	c.postsGen++
	c.postsOp.begin()
	logging.UIDebug("selected user %d (%s), posts gen %d", u.ID, u.Name, c.postsGen)
	return c.postsGen
}

// ApplyPosts records a posts fetch result. Results carrying a stale
// generation are dropped and the method reports false.
func (c *Controller) ApplyPosts(gen uint64, posts []placeholder.Post, err error) bool {
	if gen != c.postsGen {
		logging.UIDebug("dropping stale posts result (gen %d, want %d)", gen, c.postsGen)
		return false
	}
	c.postsOp.finish(err)
	if err != nil {
		logging.UI("posts load failed: %v", err)
		c.posts = nil
		c.page = 1
		return true
	}
	c.adoptPosts(posts)
	return true
}

// adoptPosts replaces the posts list wholesale, clamps the page into the
// valid range, and keeps the local id counter ahead of everything seen.
func (c *Controller) adoptPosts(posts []placeholder.Post) {
	c.posts = posts
	c.clampPage()
	for _, p := range posts {
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
	}
}

// Selected returns the selected user, if any.
func (c *Controller) Selected() (placeholder.User, bool) {
	return c.selected, c.hasSelected
}

// Posts returns the full posts list for the selected user.
func (c *Controller) Posts() []placeholder.Post { return c.posts }

// PostsOp exposes the posts operation state.
func (c *Controller) PostsOp() Operation { return c.postsOp }

// =============================================================================
// COMMENTS
// =============================================================================

// BeginComments starts a comments fetch for the given post and returns the
// generation to echo back to ApplyComments. Calling it again for the same
// post re-fetches; there is no cache.
func (c *Controller) BeginComments(postID int) uint64 {
	c.commentsGen++
	c.commentsOp.begin()
	c.viewedPost = postID
	c.hasViewed = true
	return c.commentsGen
}

// ApplyComments records a comments fetch result, replacing (never merging)
// the visible comment list. Stale generations are dropped.
func (c *Controller) ApplyComments(gen uint64, comments []placeholder.Comment, err error) bool {
	if gen != c.commentsGen {
		return false
	}
	c.commentsOp.finish(err)
	if err != nil {
		logging.UI("comments load failed: %v", err)
		c.comments = nil
		return true
	}
	c.comments = comments
	return true
}

// HideComments dismisses the comments view without touching anything else.
func (c *Controller) HideComments() {
	c.clearComments()
}

func (c *Controller) clearComments() {
	c.comments = nil
	c.viewedPost = 0
	c.hasViewed = false
	c.commentsGen++ // orphan any in-flight fetch
	c.commentsOp = Operation{}
}

// Comments returns the comments for the viewed post.
func (c *Controller) Comments() []placeholder.Comment { return c.comments }

// ViewedPost returns the post id whose comments are visible, if any.
func (c *Controller) ViewedPost() (int, bool) { return c.viewedPost, c.hasViewed }

// CommentsOp exposes the comments operation state.
func (c *Controller) CommentsOp() Operation { return c.commentsOp }

// =============================================================================
// DRAFT AND CREATE
// =============================================================================

// SetDraftTitle updates the draft title.
func (c *Controller) SetDraftTitle(s string) { c.draft.Title = s }

// SetDraftBody updates the draft body.
func (c *Controller) SetDraftBody(s string) { c.draft.Body = s }

// Draft returns the current form content.
func (c *Controller) Draft() Draft { return c.draft }

// BeginCreate validates the draft and, if valid, marks the create in
// flight and returns the request body to submit. A validation failure
// blocks the submission: no request body is returned and no state changes.
func (c *Controller) BeginCreate() (placeholder.NewPost, error) {
	if !c.hasSelected {
		return placeholder.NewPost{}, ErrNoUserSelected
	}
	if strings.TrimSpace(c.draft.Title) == "" {
		return placeholder.NewPost{}, ErrEmptyTitle
	}
	if strings.TrimSpace(c.draft.Body) == "" {
		return placeholder.NewPost{}, ErrEmptyBody
	}
	c.createOp.begin()
	return placeholder.NewPost{
		Title:  c.draft.Title,
		Body:   c.draft.Body,
		UserID: c.selected.ID,
	}, nil
}

// ApplyCreate records the create result. On success the echoed post gets a
// locally assigned id (monotonic, unique for the session regardless of how
// the list changes) and is prepended to the posts list; the draft clears.
// On failure everything but the create error stays as it was.
func (c *Controller) ApplyCreate(created placeholder.Post, err error) {
	c.createOp.finish(err)
	if err != nil {
		logging.UI("create post failed: %v", err)
		return
	}
	created.ID = c.nextID
	c.nextID++
	c.posts = append([]placeholder.Post{created}, c.posts...)
	c.draft = Draft{}
	logging.UIDebug("created post %d for user %d", created.ID, created.UserID)
}

// CreateOp exposes the create operation state.
func (c *Controller) CreateOp() Operation { return c.createOp }

// =============================================================================
// PAGINATION
// =============================================================================

// Paginate moves one page forward or back. Moving past either end is a
// no-op; it reports whether the page changed.
func (c *Controller) Paginate(d Direction) bool {
	switch d {
	case Next:
		if c.page*c.pageSize < len(c.posts) {
			c.page++
			return true
		}
	case Prev:
		if c.page > 1 {
			c.page--
			return true
		}
	}
	return false
}

// clampPage resets the page into [1, PageCount] after the list changes size.
func (c *Controller) clampPage() {
	if max := c.PageCount(); c.page > max {
		c.page = max
	}
	if c.page < 1 {
		c.page = 1
	}
}

// Page returns the current 1-based page index.
func (c *Controller) Page() int { return c.page }

// PageSize returns the fixed page size.
func (c *Controller) PageSize() int { return c.pageSize }

// SetPageSize changes the page size (live config reload) and re-clamps the
// current page.
func (c *Controller) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.clampPage()
}

// PageCount returns ceil(len(posts)/pageSize), never less than 1.
func (c *Controller) PageCount() int {
	n := (len(c.posts) + c.pageSize - 1) / c.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// VisiblePosts returns the slice of posts for the current page.
func (c *Controller) VisiblePosts() []placeholder.Post {
	start := (c.page - 1) * c.pageSize
	if start >= len(c.posts) {
		return nil
	}
	end := start + c.pageSize
	if end > len(c.posts) {
		end = len(c.posts)
	}
	return c.posts[start:end]
}

// =============================================================================
// DERIVED VIEW STATE
// =============================================================================

// Busy reports whether any operation is in flight.
func (c *Controller) Busy() bool {
	return c.usersOp.Loading() || c.postsOp.Loading() ||
		c.commentsOp.Loading() || c.createOp.Loading()
}

// Err returns the first failed operation's error, checked in workflow
// order, or nil when nothing is failed.
func (c *Controller) Err() error {
	for _, op := range []Operation{c.usersOp, c.postsOp, c.createOp, c.commentsOp} {
		if op.Failed() {
			return op.Err
		}
	}
	return nil
}
