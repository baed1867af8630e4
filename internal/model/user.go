package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType distinguishes the two registration tracks. Accounts created
// outside those tracks carry AccountTypeNone.
type AccountType string

const (
	AccountTypeBusiness AccountType = "business"
	AccountTypeTalent   AccountType = "talent"
	AccountTypeNone     AccountType = ""
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBusiness, AccountTypeTalent, AccountTypeNone:
		return true
	}
	return false
}

// ContactInfo groups the public contact fields of a profile.
type ContactInfo struct {
	Email    string `json:"email" gorm:"size:255"`
	Phone    string `json:"phone,omitempty" gorm:"size:50"`
	Website1 string `json:"website1,omitempty" gorm:"size:255"`
	Website2 string `json:"website2,omitempty" gorm:"size:255"`
}

// User represents a registered account. The username column uses a binary
// collation so lookups are case-sensitive, and its unique index is what
// enforces username uniqueness at create time.
type User struct {
	ID           uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string      `json:"username" gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string      `json:"name" gorm:"size:255"`
	Address      string      `json:"address" gorm:"size:255"`
	ContactInfo  ContactInfo `json:"contact_info" gorm:"embedded;embeddedPrefix:contact_"`
	AccountType  AccountType `json:"account_type" gorm:"size:20;index"`
	Admin        bool        `json:"admin" gorm:"default:false"`
	About        string      `json:"about,omitempty" gorm:"type:text"`
	Experience   string      `json:"experience,omitempty" gorm:"type:text"`
	Education    string      `json:"education,omitempty" gorm:"type:text"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Identity is the authenticated view of a user handed to request
// handlers after credential verification or session resolution. It
// carries role attributes and profile fields, never the password hash.
type Identity struct {
	ID          uuid.UUID   `json:"id"`
	Username    string      `json:"username"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	ContactInfo ContactInfo `json:"contact_info"`
	AccountType AccountType `json:"account_type"`
	Admin       bool        `json:"admin"`
	About       string      `json:"about,omitempty"`
	Experience  string      `json:"experience,omitempty"`
	Education   string      `json:"education,omitempty"`
}

// Identity builds the authenticated view of the user.
func (u *User) Identity() Identity {
	return Identity{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Address:     u.Address,
		ContactInfo: u.ContactInfo,
		AccountType: u.AccountType,
		Admin:       u.Admin,
		About:       u.About,
		Experience:  u.Experience,
		Education:   u.Education,
	}
}

// DirectoryEntry is the restricted projection of a User exposed to the
// admin directory. It deliberately has no password field.
type DirectoryEntry struct {
	Name        string      `json:"name"`
	Username    string      `json:"username"`
	Address     string      `json:"address"`
	ContactInfo ContactInfo `json:"contact_info" gorm:"embedded;embeddedPrefix:contact_"`
	AccountType AccountType `json:"account_type"`
}
