package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/services"
)

// ReactionHandler, tepki endpoint'lerini yöneten struct.
type ReactionHandler struct {
	reactionService services.ReactionService
	feedService     services.FeedService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService, feedService services.FeedService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		feedService:     feedService,
	}
}

// Toggle godoc
// POST /api/posts/{id}/reactions
// Body: { "kind": "like" | "love" | "dislike" | "hahaha" | "🍅" }
//
// Aynı tür ile tekrar istek atılırsa tepki kaldırılır (toggle),
// farklı tür mevcut tepkinin yerine geçer. Response, sonuç etiketini
// (created/removed/changed), viewer'ın güncel türünü ve post'un güncel
// sayılarını birlikte döner.
//
// Kind body'de taşınır — 🍅 token'ı URL path'te encoding sorunları yaratır.
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var body models.ToggleReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.reactionService.Toggle(r.Context(), r.PathValue("id"), user.ID, body.Kind)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, outcome)
}

// Aggregate godoc
// GET /api/posts/{id}/reactions
// Tür bazında sayılar (beş tür her zaman mevcut, sıfır dahil) +
// authenticated viewer varsa viewer_kind.
func (h *ReactionHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	agg, err := h.feedService.Aggregate(r.Context(), r.PathValue("id"), viewerID(r))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, agg)
}
