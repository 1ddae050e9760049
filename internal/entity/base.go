package entity

import (
	"time"
)

// Base is embedded by records identified by a uuid. Records are hard
// deleted so that foreign key actions of the database apply.
type Base struct {
	ID        string `gorm:"primarykey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnowFlakeBase is embedded by records identified by a snowflake id, which
// grows with the insertion order.
type SnowFlakeBase struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	UpdatedAt time.Time
}
