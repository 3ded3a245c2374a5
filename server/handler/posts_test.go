package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/circlefeed/circlefeed/model"
	"github.com/circlefeed/circlefeed/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPostForm(t *testing.T, router http.Handler, h *Handler, authorId string, description string, pictureName string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.Nil(t, writer.WriteField("description", description))
	if pictureName != "" {
		part, err := writer.CreateFormFile("picture", pictureName)
		require.Nil(t, err)
		_, err = io.WriteString(part, "fake-image-bytes")
		require.Nil(t, err)
	}
	require.Nil(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = withBearer(t, h, req, authorId)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := map[string]interface{}{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func listPosts(t *testing.T, router http.Handler, target string) []map[string]interface{} {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var posts []map[string]interface{}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &posts))
	return posts
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, h := newTestRouter(t, db)

	author := utils.TestCreateUser(t, db, "Ada", "Lovelace", "ada@x.com", "pw1")
	author.PicturePath = "ada.jpg"
	require.Nil(t, db.Save(author).Error)

	w, created := createPostForm(t, router, h, author.Id, "hello", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "hello", created["description"])
	assert.Equal(t, "Ada", created["firstName"])
	assert.Equal(t, "ada.jpg", created["userPicturePath"])

	// A later profile edit must not leak into the already published post:
	// the author fields are a creation-time snapshot.
	require.Nil(t, db.Model(&model.User{}).Where("id = ?", author.Id).
		Updates(map[string]interface{}{"first_name": "Augusta", "picture_path": "new.jpg"}).Error)

	posts := listPosts(t, router, "/posts")
	require.Len(t, posts, 1)
	assert.Equal(t, "Ada", posts[0]["firstName"])
	assert.Equal(t, "ada.jpg", posts[0]["userPicturePath"])
}

func TestCreatePostWithPicture(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, h := newTestRouter(t, db)

	author := utils.TestCreateUser(t, db, "Ada", "Lovelace", "ada@x.com", "pw1")
	w, created := createPostForm(t, router, h, author.Id, "with picture", "sunset.png")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sunset.png", created["picturePath"])
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, h := newTestRouter(t, db)

	w, _ := createPostForm(t, router, h, "no-such-id", "orphan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPostsNewestFirstAndByUser(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, _ := newTestRouter(t, db)

	u1 := utils.TestCreateUser(t, db, "Ada", "Lovelace", "u1@x.com", "pw1")
	u2 := utils.TestCreateUser(t, db, "Alan", "Turing", "u2@x.com", "pw2")

	first := utils.TestCreatePost(t, db, u1, "first")
	second := utils.TestCreatePost(t, db, u2, "second")
	third := utils.TestCreatePost(t, db, u1, "third")

	posts := listPosts(t, router, "/posts")
	require.Len(t, posts, 3)
	assert.Equal(t, third.Id, posts[0]["id"])
	assert.Equal(t, second.Id, posts[1]["id"])
	assert.Equal(t, first.Id, posts[2]["id"])

	// Stable across repeated reads absent writes.
	again := listPosts(t, router, "/posts")
	for i := range posts {
		assert.Equal(t, posts[i]["id"], again[i]["id"])
	}

	byUser := listPosts(t, router, "/posts/"+u1.Id+"/posts")
	require.Len(t, byUser, 2)
	assert.Equal(t, third.Id, byUser[0]["id"])
	assert.Equal(t, first.Id, byUser[1]["id"])
}

func TestLikeToggleIsIdempotentUnderDoubleApplication(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, h := newTestRouter(t, db)

	author := utils.TestCreateUser(t, db, "Ada", "Lovelace", "u1@x.com", "pw1")
	liker := utils.TestCreateUser(t, db, "Alan", "Turing", "u2@x.com", "pw2")
	post := utils.TestCreatePost(t, db, author, "likeable")

	like := func() *httptest.ResponseRecorder {
		req := withBearer(t, h, httptest.NewRequest(http.MethodPatch, "/posts/"+post.Id+"/like", nil), liker.Id)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := like()
	require.Equal(t, http.StatusOK, w.Code)
	var stored model.Post
	require.Equal(t, int64(1), db.Where("id = ?", post.Id).First(&stored).RowsAffected)
	assert.True(t, stored.LikedBy(liker.Id))

	// Second application restores the original like map.
	w = like()
	require.Equal(t, http.StatusOK, w.Code)
	stored = model.Post{}
	require.Equal(t, int64(1), db.Where("id = ?", post.Id).First(&stored).RowsAffected)
	assert.False(t, stored.LikedBy(liker.Id))
	assert.Len(t, stored.Likes, 0)
}

func TestLikeUnknownPost(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	router, h := newTestRouter(t, db)

	liker := utils.TestCreateUser(t, db, "Ada", "Lovelace", "u1@x.com", "pw1")
	req := withBearer(t, h, httptest.NewRequest(http.MethodPatch, "/posts/no-such-id/like", nil), liker.Id)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
