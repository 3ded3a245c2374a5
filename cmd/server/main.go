package main

import (
	"net/http"
	"os"

	"github.com/circlefeed/circlefeed/app_setting"
	"github.com/circlefeed/circlefeed/file_store"
	"github.com/circlefeed/circlefeed/server/handler"
	"github.com/circlefeed/circlefeed/server/middlewares"
	"github.com/circlefeed/circlefeed/token"
	"github.com/circlefeed/circlefeed/utils"
	"github.com/circlefeed/circlefeed/utils/dotenv"
	Flag "github.com/circlefeed/circlefeed/utils/flag"
	Logger "github.com/circlefeed/circlefeed/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func loadAppSetting() app_setting.ServerAppSetting {
	path := os.Getenv("SERVER_APP_SETTING")
	if path == "" {
		return app_setting.DefaultServerAppSetting()
	}
	setting, err := app_setting.ParseServerAppSetting(path)
	if err != nil {
		Logger.Log.Fatalf("fail to parse app setting %s: %v", path, err)
	}
	return setting
}

func main() {
	defer cleanup()

	Flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	// Re-init so the logger picks up the parsed flags and loaded env.
	Logger.InitLogger()

	setting := loadAppSetting()

	// A server that cannot reach its store should not come up at all.
	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatalf("fail to connect to database: %v", err)
	}
	utils.DatabaseSetupAndMigration(db)

	maker, err := token.NewMaker(os.Getenv("JWT_SECRET"))
	if err != nil {
		Logger.Log.Fatalf("fail to create token maker: %v", err)
	}

	files, err := file_store.NewLocalFileStore(setting.ASSETS_DIR)
	if err != nil {
		Logger.Log.Fatalf("fail to set up file store: %v", err)
	}

	var stats *utils.ProfileStatsStore
	if !setting.DISABLE_PROFILE_STATS {
		stats, err = utils.GetProfileStatsStore()
		if err != nil {
			// Counters are a nice-to-have, the server still serves without
			// them.
			Logger.Log.Errorf("fail to connect to redis, profile stats disabled: %v", err)
			stats = nil
		}
	}

	h := &handler.Handler{DB: db, Token: maker, Files: files, Stats: stats}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(Flag.ServiceName))
	router.MaxMultipartMemory = setting.MAX_UPLOAD_SIZE_MB << 20

	// Uploaded attachments are public, served straight off disk.
	router.Static("/assets", files.RootDir())

	auth := middlewares.JWT(h.Token)

	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)

	router.GET("/users/:id", auth, h.GetUser)
	router.GET("/users/:id/friends", auth, h.GetUserFriends)
	router.PATCH("/users/:id/:friendId", auth, h.AddRemoveFriend)

	router.POST("/posts", auth, h.CreatePost)
	router.GET("/posts", h.GetFeedPosts)
	router.GET("/posts/:userId/posts", h.GetUserPosts)
	router.PATCH("/posts/:id/like", auth, h.LikePost)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Logger.Log.Info("api server starts up")
	router.Run(setting.SERVER_ADDR)
}
