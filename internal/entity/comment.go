package entity

import "time"

type Comment struct {
	SnowFlakeBase
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`

	PostID int64 `gorm:"not null;index"`
	Post   *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`

	AuthorID string `gorm:"size:36;not null;index"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
