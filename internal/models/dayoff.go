package models

import "time"

// DayOff is one occurrence of a day-off. A recurring entry is persisted as
// its bounded set of occurrences sharing a SeriesID, so scope-limited
// mutations (single/future/all) map onto plain row selections.
type DayOff struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SeriesID string `gorm:"size:36;index" json:"series_id,omitempty"`

	InitHour time.Time `json:"init_hour"`
	EndHour  time.Time `json:"end_hour"`

	Repeat      bool   `json:"repeat"`
	RepeatType  string `gorm:"size:10" json:"repeat_type,omitempty"`
	RepeatValue string `gorm:"size:5" json:"repeat_value,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
