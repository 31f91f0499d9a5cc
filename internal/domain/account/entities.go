package account

import "errors"

var ErrNotFound = errors.New("account not found")

// Account is an administrative login. Passwords are stored as the seed
// tooling provides them; only administrative_code carries a uniqueness
// constraint.
type Account struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	AdministrativeCode int    `gorm:"uniqueIndex;not null;column:administrative_code" json:"administrative"`
	Password           string `gorm:"size:255;not null" json:"-"`
}

func (Account) TableName() string { return "accounts" }
