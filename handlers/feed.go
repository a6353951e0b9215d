package handlers

import (
	"net/http"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/services"
)

// FeedHandler, feed endpoint'ini yöneten struct.
type FeedHandler struct {
	feedService services.FeedService
}

// NewFeedHandler, constructor.
func NewFeedHandler(feedService services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// Feed godoc
// GET /api/feed
//
// Tüm post'lar oluşturulma sırasıyla, her biri tepki sayıları ve
// (authenticated viewer varsa) viewer_kind ile birleştirilmiş halde.
// Tepkisiz post'lar tüm sayıları 0 olarak döner.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.Feed(r.Context(), viewerID(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if feed == nil {
		feed = []models.FeedPost{}
	}
	pkg.JSON(w, http.StatusOK, feed)
}
