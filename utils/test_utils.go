package utils

import (
	"testing"

	"github.com/circlefeed/circlefeed/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// create a user row with a properly hashed password, do sanity checks and
// return the stored record
func TestCreateUser(t *testing.T, db *gorm.DB, firstName string, lastName string, email string, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.Nil(t, err)

	user := model.User{
		Id:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
	}
	require.Nil(t, db.Create(&user).Error)
	require.NotEqual(t, password, user.PasswordHash)

	return &user
}

// create a post row snapshotting the author's current display fields, do
// sanity checks and return the stored record
func TestCreatePost(t *testing.T, db *gorm.DB, author *model.User, description string) *model.Post {
	t.Helper()

	post := model.Post{
		Id:              uuid.New().String(),
		AuthorID:        author.Id,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		UserPicturePath: author.PicturePath,
		Description:     description,
		Likes:           datatypes.JSONMap{},
	}
	require.Nil(t, db.Create(&post).Error)

	return &post
}
