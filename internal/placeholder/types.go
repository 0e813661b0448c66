package placeholder

// User is a profile record from GET /users. Profile fields beyond ID and
// Name are carried for display only; nothing downstream keys on them.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Website  string `json:"website"`
}

// Post is a blog post scoped to a user. Posts created through the sandbox
// are echoed back but never persisted server-side, so the ID of a created
// post is always overridden by the caller.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Comment is a read-only record scoped to a post.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// NewPost is the request body for POST /posts.
type NewPost struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}
