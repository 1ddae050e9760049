package entity

type User struct {
	Base
	Username  string `gorm:"size:150;unique;not null"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Email     string `gorm:"size:254"`
	Password  string `gorm:"size:128;not null"`
}

// FullName falls back to the username if the user has no name.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}

	if name == "" {
		return u.Username
	}

	return name
}
