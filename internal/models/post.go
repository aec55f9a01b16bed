package models

import "time"

// Post is an authored entry, optionally filed under a group and
// optionally carrying one image. Posts are listed newest-first.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Image     string    `json:"image,omitempty"` // storage path, empty when no image attached
	AuthorID  uint      `json:"author_id" gorm:"index;not null"`
	Author    User      `json:"author" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint     `json:"group_id,omitempty" gorm:"index"`
	Group     *Group    `json:"group,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CreatedAt time.Time `json:"created_at"`
}

// PostForm is the submitted post creation/edit form. The image file is
// read from the multipart request separately from the bound fields.
type PostForm struct {
	Text    string `form:"text" validate:"required"`
	GroupID *uint  `form:"group"`
}
