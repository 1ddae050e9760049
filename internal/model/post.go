package model

import "fmt"

// Post detail
type GetPostRequest struct {
	PostID int64 `json:"post_id"`
}

type GetPostResponse struct {
	Post      Post        `json:"post" structs:",omitnested"`
	PostCount int64       `json:"post_count"`
	Comments  []Comment   `json:"comments" structs:",omitnested"`
	Form      CommentForm `json:"form" structs:",omitnested"`
	CanEdit   bool        `json:"can_edit"`

	// RedirectURL is set after a valid comment.
	RedirectURL string `json:"-" structs:"-"`
}

func (GetPostResponse) Template() string { return "posts/post_detail.html" }

func (r GetPostResponse) RedirectInfo() (int, string) {
	return redirectIfSet(r.RedirectURL)
}

// Post form, shared by create and edit
type PostFormResponse struct {
	Form   PostForm `json:"form" structs:",omitnested"`
	Groups []Group  `json:"groups" structs:",omitnested"`
	IsEdit bool     `json:"is_edit"`
	PostID int64    `json:"post_id,omitempty"`

	// RedirectURL is set after a valid form or when the user cannot edit
	// the post.
	RedirectURL string `json:"-" structs:"-"`
}

func (PostFormResponse) Template() string { return "posts/create_post.html" }

func (r PostFormResponse) RedirectInfo() (int, string) {
	return redirectIfSet(r.RedirectURL)
}

// Create post
type CreatePostFormRequest struct{}

type CreatePostRequest struct {
	Text  string `json:"text"`
	Group string `json:"group"`
}

// Edit post
type EditPostFormRequest struct {
	PostID int64 `json:"post_id"`
}

type EditPostRequest struct {
	PostID int64  `json:"post_id"`
	Text   string `json:"text"`
	Group  string `json:"group"`
}

// Add comment
type AddCommentRequest struct {
	PostID int64  `json:"post_id"`
	Text   string `json:"text"`
}

func PostDetailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func ProfileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", username)
}
