package entity

import (
	"database/sql"
	"time"
)

type Post struct {
	SnowFlakeBase
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`

	AuthorID string `gorm:"size:36;not null;index"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`

	// GroupID is null when no group was chosen or the group was deleted.
	GroupID sql.NullString `gorm:"size:36;index"`
	Group   *Group         `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`

	Image string `gorm:"size:512"`
}

// Short is the first 15 characters of the text.
func (p *Post) Short() string {
	r := []rune(p.Text)
	if len(r) <= 15 {
		return p.Text
	}

	return string(r[:15])
}
