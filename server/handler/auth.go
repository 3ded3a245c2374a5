package handler

import (
	"net/http"

	"github.com/circlefeed/circlefeed/model"
	"github.com/circlefeed/circlefeed/utils"
	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a user from a multipart form, hashing the password and
// storing the optional "picture" attachment before anything is persisted.
// Responds 201 with the created user and a freshly minted session token.
func (h *Handler) Register(c *gin.Context) {
	firstName := c.PostForm("firstName")
	lastName := c.PostForm("lastName")
	email := c.PostForm("email")
	password := c.PostForm("password")
	location := c.PostForm("location")
	occupation := c.PostForm("occupation")

	if firstName == "" || lastName == "" || email == "" || password == "" {
		abortWithError(c, http.StatusBadRequest, utils.ErrorValidation, "firstName, lastName, email and password are required")
		return
	}

	var existing model.User
	if res := h.DB.Where("email = ?", email).First(&existing); res.RowsAffected != 0 {
		abortWithError(c, http.StatusConflict, utils.ErrorDuplicateEmail, "email already registered")
		return
	}

	picturePath := ""
	if file, err := c.FormFile("picture"); err == nil {
		key, err := h.Files.Store(file)
		if err != nil {
			Logger.Log.Errorf("fail to store registration picture: %v", err)
			abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to store picture")
			return
		}
		picturePath = key
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to hash password")
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		PicturePath:  picturePath,
		Location:     location,
		Occupation:   occupation,
		Friends:      []*model.User{},
	}

	if err := h.DB.Create(&user).Error; err != nil {
		Logger.Log.Errorf("fail to create user %s: %v", email, err)
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to create user")
		return
	}

	signed, err := h.Token.Sign(user.Id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to sign token")
		return
	}

	Logger.Log.WithField("user_id", user.Id).Info("user registered")
	c.JSON(http.StatusCreated, gin.H{
		"user":  h.userResponse(&user),
		"token": signed,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials against the stored bcrypt hash and responds
// with the user and a new session token.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, utils.ErrorValidation, "email and password are required")
		return
	}

	var user model.User
	if res := h.DB.Where("email = ?", input.Email).First(&user); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "user does not exist")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		abortWithError(c, http.StatusUnauthorized, utils.ErrorInvalidCredentials, "invalid credentials")
		return
	}

	signed, err := h.Token.Sign(user.Id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to sign token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  h.userResponse(&user),
		"token": signed,
	})
}
