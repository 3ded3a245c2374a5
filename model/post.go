package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*

Post is a piece of content a user published to the shared feed

Id: primary key, use to identify a post
CreatedAt: time when entity is created
DeletedAt: time when entity is deleted
AuthorID:
Author: user who wrote this post, "belongs-to" relation

FirstName, LastName, UserPicturePath:
	snapshot of the author's display fields taken at creation time. They are
	deliberately NOT re-synced when the author later edits their profile, so
	a post always renders the way it looked when published.

Description: post's body in plain text
PicturePath: file store key of the attached image, empty if none uploaded
Likes: map of user id -> true for every user who currently likes this post.
	Toggling a like flips the presence of the key; a user can therefore like
	a post at most once.

Cursor: The auto-inc global-unique index to keep the relative order of posts

*/

type Post struct {
	Id              string            `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time         `json:"createdAt"`
	DeletedAt       gorm.DeletedAt    `json:"-"`
	AuthorID        string            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"userId"`
	Author          *User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	UserPicturePath string            `json:"userPicturePath"`
	Description     string            `json:"description"`
	PicturePath     string            `json:"picturePath"`
	Likes           datatypes.JSONMap `json:"likes"`
	Cursor          int32             `gorm:"autoIncrement" json:"-"`
}

// LikedBy reports whether userId currently likes the post.
func (p *Post) LikedBy(userId string) bool {
	if p.Likes == nil {
		return false
	}
	_, ok := p.Likes[userId]
	return ok
}
