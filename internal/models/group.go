package models

// Group is a topical category posts can be filed under.
// Groups are created out-of-band (seed data or admin tooling).
type Group struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
}
