package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostShort(t *testing.T) {
	p := Post{Text: "Короткий"}
	require.Equal(t, "Короткий", p.Short())

	p.Text = "Очень длинный текст поста"
	require.Equal(t, "Очень длинный т", p.Short())
}

func TestUserFullName(t *testing.T) {
	u := User{Username: "leo"}
	require.Equal(t, "leo", u.FullName())

	u.FirstName = "Лев"
	require.Equal(t, "Лев", u.FullName())

	u.LastName = "Толстой"
	require.Equal(t, "Лев Толстой", u.FullName())
}
