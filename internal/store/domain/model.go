package domain

import "time"

// Store is a partner shop whose deals the site aggregates. Rows are owned by
// the upstream pipeline; this service reads them.
type Store struct {
	ID          string     `json:"id" gorm:"primaryKey;type:text"`
	Name        string     `json:"name" gorm:"type:text;not null"`
	Slug        string     `json:"slug" gorm:"type:text;index"`
	Logo        *string    `json:"logo,omitempty" gorm:"type:text"`
	Website     *string    `json:"website,omitempty" gorm:"type:text"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (Store) TableName() string { return "stores" }
