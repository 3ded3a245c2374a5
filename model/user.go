package model

import (
	"time"

	"gorm.io/gorm"
)

/*

User is a data model for a registered member

Id: primary key, uuid generated at registration
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted

FirstName: user's first name
LastName: user's last name
Email: login identity, unique across all users
PasswordHash: bcrypt hash of the login password, never serialized
PicturePath: file store key of the profile picture, empty if none uploaded
Location: free-form profile field
Occupation: free-form profile field

ViewedProfile: times this profile page has been fetched, persisted baseline
	for the live redis counter
Impressions: times this user's posts have shown up in a feed listing,
	persisted baseline for the live redis counter

Friends: users this user is friends with, "many-to-many" relation through
	UserFriendship. The relation is symmetric: an edge A->B always has a
	mirror edge B->A, both maintained in the same transaction.

*/

type User struct {
	Id            string         `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	DeletedAt     gorm.DeletedAt `json:"-"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `gorm:"uniqueIndex" json:"email"`
	PasswordHash  string         `json:"-"`
	PicturePath   string         `json:"picturePath"`
	Location      string         `json:"location"`
	Occupation    string         `json:"occupation"`
	ViewedProfile int64          `json:"viewedProfile"`
	Impressions   int64          `json:"impressions"`
	Friends       []*User        `json:"friends,omitempty" gorm:"many2many:user_friendships;"`
}
