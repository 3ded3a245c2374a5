package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/circlefeed/circlefeed/file_store"
	"github.com/circlefeed/circlefeed/server/middlewares"
	"github.com/circlefeed/circlefeed/token"
	"github.com/circlefeed/circlefeed/utils/dotenv"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-signing-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

// newTestRouter wires a router the same way cmd/server does, against a temp
// DB, a fake file store and no redis.
func newTestRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *Handler) {
	t.Helper()

	maker, err := token.NewMaker(testSecret)
	require.Nil(t, err)

	h := &Handler{DB: db, Token: maker, Files: &file_store.FakeFileStore{}}

	router := gin.New()
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

	return router, h
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// registerForm posts a multipart registration and returns the decoded body.
func registerForm(t *testing.T, router *gin.Engine, fields map[string]string, pictureName string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.Nil(t, writer.WriteField(k, v))
	}
	if pictureName != "" {
		part, err := writer.CreateFormFile("picture", pictureName)
		require.Nil(t, err)
		_, err = io.WriteString(part, "fake-image-bytes")
		require.Nil(t, err)
	}
	require.Nil(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := serve(router, req)

	resp := map[string]interface{}{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func loginJSON(t *testing.T, router *gin.Engine, email string, password string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.Nil(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req)

	resp := map[string]interface{}{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// withBearer signs a token asserting userId and attaches it to the request.
func withBearer(t *testing.T, h *Handler, req *http.Request, userId string) *http.Request {
	t.Helper()
	signed, err := h.Token.Sign(userId)
	require.Nil(t, err)
	req.Header.Set("Authorization", "Bearer "+signed)
	return req
}
