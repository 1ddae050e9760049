package model

import "time"

type AccessToken struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type Group struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Short     string    `json:"short"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `json:"author"`

	// Group is nil if the post does not belong to any group.
	Group *Group `json:"group,omitempty"`
	Image string `json:"image,omitempty"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    User      `json:"author"`
}
