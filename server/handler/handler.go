package handler

import (
	"github.com/circlefeed/circlefeed/file_store"
	"github.com/circlefeed/circlefeed/model"
	"github.com/circlefeed/circlefeed/token"
	"github.com/circlefeed/circlefeed/utils"
	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// It serves as dependency injection for the api server, add any dependencies
// handlers require here.

type Handler struct {
	DB    *gorm.DB
	Token *token.Maker
	Files file_store.UploadedFileStore
	// Stats is optional. When nil, profile counters are served from their
	// persisted baselines only.
	Stats *utils.ProfileStatsStore
}

func abortWithError(c *gin.Context, status int, code int, msg string) {
	c.JSON(status, gin.H{
		"code": code,
		"msg":  msg,
	})
	c.Abort()
}

// userResponse shapes a stored user for the wire: a copy is taken so the
// gorm-tracked record is never mutated, and the live redis counter deltas
// are merged onto the persisted baselines. Redis being down only costs the
// deltas.
func (h *Handler) userResponse(u *model.User) *model.User {
	var out model.User
	if err := copier.Copy(&out, u); err != nil {
		Logger.Log.Errorf("fail to copy user %s for response: %v", u.Id, err)
		out = *u
	}

	if h.Stats == nil {
		return &out
	}
	if views, err := h.Stats.GetStat(utils.StatViewedProfile, u.Id); err == nil {
		out.ViewedProfile += views
	}
	if impressions, err := h.Stats.GetStat(utils.StatImpressions, u.Id); err == nil {
		out.Impressions += impressions
	}
	return &out
}
