package model

import "github.com/yatube-lab/backend/internal/common"

type SearchPostsRequest struct {
	Q    string `json:"q"`
	Page string `json:"page"`
}

type SearchPostsResponse struct {
	Query string      `json:"query"`
	Posts []Post      `json:"posts" structs:",omitnested"`
	Page  common.Page `json:"page" structs:",omitnested"`
}

func (SearchPostsResponse) Template() string { return "posts/search.html" }
