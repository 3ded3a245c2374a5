package handler

import (
	"net/http"

	"github.com/circlefeed/circlefeed/model"
	"github.com/circlefeed/circlefeed/server/middlewares"
	"github.com/circlefeed/circlefeed/utils"
	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreatePost publishes a post authored by the verified requester. The
// author's display fields are snapshotted onto the post at creation time
// and never re-synced on later profile edits.
func (h *Handler) CreatePost(c *gin.Context) {
	authorId := c.GetString(middlewares.ContextUserIdKey)

	var author model.User
	if res := h.DB.Where("id = ?", authorId).First(&author); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "author does not exist")
		return
	}

	description := c.PostForm("description")

	picturePath := ""
	if file, err := c.FormFile("picture"); err == nil {
		key, err := h.Files.Store(file)
		if err != nil {
			Logger.Log.Errorf("fail to store post picture: %v", err)
			abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to store picture")
			return
		}
		picturePath = key
	}

	post := model.Post{
		Id:              uuid.New().String(),
		AuthorID:        author.Id,
		FirstName:       author.FirstName,
		LastName:        author.LastName,
		UserPicturePath: author.PicturePath,
		Description:     description,
		PicturePath:     picturePath,
		Likes:           datatypes.JSONMap{},
	}

	if err := h.DB.Create(&post).Error; err != nil {
		Logger.Log.Errorf("fail to create post for %s: %v", author.Id, err)
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to create post")
		return
	}

	c.JSON(http.StatusCreated, &post)
}

// GetFeedPosts lists every post newest first. Each returned post counts as
// an impression for its author, bumped best effort in one pipelined call.
func (h *Handler) GetFeedPosts(c *gin.Context) {
	var posts []model.Post
	if err := h.DB.Order("cursor DESC").Find(&posts).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to list posts")
		return
	}

	if h.Stats != nil && len(posts) > 0 {
		authorIds := []string{}
		for _, p := range posts {
			authorIds = append(authorIds, p.AuthorID)
		}
		if err := h.Stats.IncrementStatBatch(utils.StatImpressions, authorIds); err != nil {
			Logger.Log.Warnf("fail to bump impressions: %v", err)
		}
	}

	c.JSON(http.StatusOK, posts)
}

// GetUserPosts lists one author's posts newest first.
func (h *Handler) GetUserPosts(c *gin.Context) {
	userId := c.Param("userId")

	var posts []model.Post
	if err := h.DB.Where("author_id = ?", userId).Order("cursor DESC").Find(&posts).Error; err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to list posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

// LikePost toggles the verified requester's like on :id and responds with
// the updated post. Toggling twice restores the original like map.
func (h *Handler) LikePost(c *gin.Context) {
	postId := c.Param("id")
	userId := c.GetString(middlewares.ContextUserIdKey)

	var post model.Post
	if res := h.DB.Where("id = ?", postId).First(&post); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "post does not exist")
		return
	}

	if post.Likes == nil {
		post.Likes = datatypes.JSONMap{}
	}
	if post.LikedBy(userId) {
		delete(post.Likes, userId)
	} else {
		post.Likes[userId] = true
	}

	if err := h.DB.Model(&post).Update("likes", post.Likes).Error; err != nil {
		Logger.Log.Errorf("fail to toggle like on %s by %s: %v", postId, userId, err)
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to toggle like")
		return
	}

	c.JSON(http.StatusOK, &post)
}
