package model

import "github.com/yatube-lab/backend/internal/common"

// Index
type IndexRequest struct {
	Page string `json:"page"`
}

type IndexResponse struct {
	Posts []Post      `json:"posts" structs:",omitnested"`
	Page  common.Page `json:"page" structs:",omitnested"`
}

func (IndexResponse) Template() string { return "posts/index.html" }

// Group posts
type GetGroupPostsRequest struct {
	Slug string `json:"slug"`
	Page string `json:"page"`
}

type GetGroupPostsResponse struct {
	Group Group       `json:"group" structs:",omitnested"`
	Posts []Post      `json:"posts" structs:",omitnested"`
	Page  common.Page `json:"page" structs:",omitnested"`
}

func (GetGroupPostsResponse) Template() string { return "posts/group_list.html" }

// Profile
type GetProfileRequest struct {
	Username string `json:"username"`
	Page     string `json:"page"`
}

type GetProfileResponse struct {
	Author         User        `json:"author" structs:",omitnested"`
	PostCount      int64       `json:"post_count"`
	FollowerCount  int64       `json:"follower_count"`
	FollowingCount int64       `json:"following_count"`
	Following      bool        `json:"following"`
	CanFollow      bool        `json:"can_follow"`
	Posts          []Post      `json:"posts" structs:",omitnested"`
	Page           common.Page `json:"page" structs:",omitnested"`
}

func (GetProfileResponse) Template() string { return "posts/profile.html" }

// Follow index
type GetFollowIndexRequest struct {
	Page string `json:"page"`
}

type GetFollowIndexResponse struct {
	Posts []Post      `json:"posts" structs:",omitnested"`
	Page  common.Page `json:"page" structs:",omitnested"`
}

func (GetFollowIndexResponse) Template() string { return "posts/follow.html" }
