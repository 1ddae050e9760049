package entity

import "time"

// Follow is a directed edge from a user to an author. The composite primary
// key keeps at most one edge per pair.
type Follow struct {
	CreatedAt time.Time

	UserID string `gorm:"primaryKey;size:36"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	AuthorID string `gorm:"primaryKey;size:36;index"`
	Author   *User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
