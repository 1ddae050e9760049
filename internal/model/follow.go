package model

const FollowIndexURL = "/follow/"

type FollowRequest struct {
	Username string `json:"username"`
}

type UnfollowRequest struct {
	Username string `json:"username"`
}
