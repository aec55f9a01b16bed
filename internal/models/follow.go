package models

import "time"

// Follow is a subscription of one user (the follower) to another user's
// posts. The composite unique index rules out duplicate rows.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_author;not null"`
	Follower   User      `json:"-" gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID   uint      `json:"author_id" gorm:"index;uniqueIndex:idx_follower_author;not null"`
	Author     User      `json:"-" gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time `json:"created_at"`
}
