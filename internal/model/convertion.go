package model

import (
	"github.com/yatube-lab/backend/internal/entity"
)

const DefaultDateLayout string = "2 January 2006"

func ConvertUser(user *entity.User) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName(),
	}
}

func ConvertGroup(group *entity.Group) *Group {
	if group == nil {
		return nil
	}

	return &Group{
		ID:          group.ID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
}

func ConvertPost(post *entity.Post) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:        post.ID,
		Text:      post.Text,
		Short:     post.Short(),
		CreatedAt: post.CreatedAt,
		Author:    ConvertUser(post.Author),
		Group:     ConvertGroup(post.Group),
		Image:     post.Image,
	}
}

func ConvertPosts(posts []entity.Post) []Post {
	result := make([]Post, 0, len(posts))
	for i := range posts {
		result = append(result, ConvertPost(&posts[i]))
	}

	return result
}

func ConvertComment(comment *entity.Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	return Comment{
		ID:        comment.ID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
		Author:    ConvertUser(comment.Author),
	}
}

func ConvertComments(comments []entity.Comment) []Comment {
	result := make([]Comment, 0, len(comments))
	for i := range comments {
		result = append(result, ConvertComment(&comments[i]))
	}

	return result
}
