package domain

import "time"

// Click is one affiliate redirect served by /out/{id}. The only table this
// service writes.
type Click struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	HashID    string    `json:"hash_id" gorm:"column:hash_id;type:text;not null;index"`
	StoreID   *string   `json:"store_id,omitempty" gorm:"column:store_id;type:text;index"`
	Referrer  string    `json:"referrer" gorm:"type:text"`
	UserAgent string    `json:"user_agent" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Click) TableName() string { return "clicks" }
