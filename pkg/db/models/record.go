package models

import "time"

// Record is one persisted document of a collection.
type Record struct {
	Collection string    `gorm:"column:collection;primaryKey;size:64"`
	ID         string    `gorm:"column:id;primaryKey;size:191"`
	Position   int       `gorm:"column:position;not null"`
	Payload    string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Record) TableName() string { return "records" }
