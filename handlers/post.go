package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/services"
)

// PostHandler, post endpoint'lerini yöneten struct.
type PostHandler struct {
	postService   services.PostService
	uploadService services.UploadService
	feedService   services.FeedService
	maxUploadSize int64
}

// NewPostHandler, constructor.
func NewPostHandler(
	postService services.PostService,
	uploadService services.UploadService,
	feedService services.FeedService,
	maxUploadSize int64,
) *PostHandler {
	return &PostHandler{
		postService:   postService,
		uploadService: uploadService,
		feedService:   feedService,
		maxUploadSize: maxUploadSize,
	}
}

// Create godoc
// POST /api/posts
//
// Multipart form: content (zorunlu) + image/video (opsiyonel dosyalar).
// Medya önce diske kaydedilir, URL'leri post satırına yazılır.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	// Form parçaları belleğe/diske açılmadan önce toplam boyut sınırlanır.
	// +1MB: metin alanları için pay.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize*2+1024*1024)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := &models.CreatePostRequest{Content: r.FormValue("content")}

	imageURL, err := h.saveFormFile(r, "image")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	videoURL, err := h.saveFormFile(r, "video")
	if err != nil {
		pkg.Error(w, err)
		return
	}

	post, err := h.postService.Create(r.Context(), user.ID, req, imageURL, videoURL)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, post)
}

// saveFormFile, opsiyonel bir form dosyasını kaydedip URL'ini döner.
// Alan hiç gönderilmemişse (nil, nil) — yokluk hata değildir.
func (h *PostHandler) saveFormFile(r *http.Request, field string) (*string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, pkg.ErrBadRequest
	}
	defer file.Close()

	url, err := h.uploadService.Save(file, header)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// List godoc
// GET /api/posts
// Tüm post'lar oluşturulma sırasıyla — aggregate'siz düz liste.
// Sayılarla birlikte görünüm için /api/feed kullanılır.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	pkg.JSON(w, http.StatusOK, posts)
}

// Get godoc
// GET /api/posts/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// UserPosts godoc
// GET /api/posts/user/{id}
// Bir kullanıcının post'ları, aggregate tepki görünümleriyle.
func (h *PostHandler) UserPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.UserFeed(r.Context(), r.PathValue("id"), viewerID(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, feed)
}

// Update godoc
// PATCH /api/posts/{id}
// Sadece post sahibi — aksi halde 403.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), r.PathValue("id"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, post)
}

// Delete godoc
// DELETE /api/posts/{id}
// Sadece post sahibi. Reaction'lar cascade ile silinir.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.postService.Delete(r.Context(), r.PathValue("id"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
