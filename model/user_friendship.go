package model

import (
	"time"

	"gorm.io/gorm"
)

/*

UserFriendship is a "many-to-many" relation between two users

UserID: owning side of the edge
FriendID: the befriended user
CreatedAt: time when relation is created, also the stored order of the
	owning user's friend list
DeletedAt: time when relation is deleted

Every friendship is stored as two rows, one per direction. Both rows are
written (or removed) inside a single transaction so the relation can never
be observed half-applied.

*/

type UserFriendship struct {
	UserID    string `gorm:"primaryKey"`
	FriendID  string `gorm:"primaryKey"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

func (UserFriendship) BeforeCreate(db *gorm.DB) error {
	return nil
}
