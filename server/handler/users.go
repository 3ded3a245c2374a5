package handler

import (
	"net/http"
	"time"

	"github.com/circlefeed/circlefeed/model"
	"github.com/circlefeed/circlefeed/utils"
	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetUser fetches one user by id. Fetching a profile counts as a view, so
// the viewed-profile counter is bumped best effort before responding.
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")

	var user model.User
	if res := h.DB.Where("id = ?", id).First(&user); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "user does not exist")
		return
	}

	if h.Stats != nil {
		if err := h.Stats.IncrementStat(utils.StatViewedProfile, user.Id); err != nil {
			Logger.Log.Warnf("fail to bump viewed profile for %s: %v", user.Id, err)
		}
	}

	c.JSON(http.StatusOK, h.userResponse(&user))
}

// friendsOf resolves the friend list of userId in stored (edge creation)
// order. An edge pointing at a user row that no longer resolves is a data
// integrity fault: it is logged and skipped rather than failing the request.
func (h *Handler) friendsOf(userId string) ([]*model.User, error) {
	var edges []model.UserFriendship
	if err := h.DB.Where("user_id = ?", userId).Order("created_at ASC").Find(&edges).Error; err != nil {
		return nil, err
	}

	friends := []*model.User{}
	for _, edge := range edges {
		var friend model.User
		res := h.DB.Where("id = ?", edge.FriendID).First(&friend)
		if res.RowsAffected != 1 {
			Logger.Log.Errorf("friend edge %s -> %s points at a missing user", userId, edge.FriendID)
			continue
		}
		friends = append(friends, h.userResponse(&friend))
	}
	return friends, nil
}

// GetUserFriends lists the friends of :id in stored order.
func (h *Handler) GetUserFriends(c *gin.Context) {
	id := c.Param("id")

	var user model.User
	if res := h.DB.Where("id = ?", id).First(&user); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "user does not exist")
		return
	}

	friends, err := h.friendsOf(id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to resolve friends")
		return
	}

	c.JSON(http.StatusOK, friends)
}

// AddRemoveFriend toggles the friendship between :id and :friendId. Both
// directions of the edge are written or removed in one transaction so the
// relation stays symmetric even if the process dies mid-request. Responds
// with both updated friend lists.
func (h *Handler) AddRemoveFriend(c *gin.Context) {
	id := c.Param("id")
	friendId := c.Param("friendId")

	if id == friendId {
		abortWithError(c, http.StatusBadRequest, utils.ErrorValidation, "cannot befriend yourself")
		return
	}

	var user, friend model.User
	if res := h.DB.Where("id = ?", id).First(&user); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "user does not exist")
		return
	}
	if res := h.DB.Where("id = ?", friendId).First(&friend); res.RowsAffected != 1 {
		abortWithError(c, http.StatusNotFound, utils.ErrorNotFound, "friend does not exist")
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var edge model.UserFriendship
		res := tx.Where("user_id = ? AND friend_id = ?", id, friendId).First(&edge)

		if res.RowsAffected == 1 {
			// Friends already, remove both directions. Hard delete so a
			// later re-add can reuse the composite key.
			if err := tx.Unscoped().
				Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)", id, friendId, friendId, id).
				Delete(&model.UserFriendship{}).Error; err != nil {
				return err
			}
			return nil
		}

		now := time.Now()
		edges := []model.UserFriendship{
			{UserID: id, FriendID: friendId, CreatedAt: now},
			{UserID: friendId, FriendID: id, CreatedAt: now},
		}
		return tx.Create(&edges).Error
	})
	if err != nil {
		Logger.Log.Errorf("fail to toggle friendship %s <-> %s: %v", id, friendId, err)
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to toggle friendship")
		return
	}

	userFriends, err := h.friendsOf(id)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to resolve friends")
		return
	}
	friendFriends, err := h.friendsOf(friendId)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, utils.ErrorStoreFailure, "fail to resolve friends")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends":       userFriends,
		"friendFriends": friendFriends,
	})
}
