package handlers

import (
	"net/http"

	"github.com/akinalp/akis/models"
)

// contextKey, context.Value için özel key tipi.
// String key kullanmak paketler arası çakışmaya neden olabilir —
// özel tip namespace collision'ı önler.
type contextKey string

// UserContextKey, auth middleware'ın context'e eklediği kullanıcı.
const UserContextKey contextKey = "user"

// UserFromContext, request context'indeki kullanıcıyı döner.
// Optional middleware ile gelen anonim isteklerde ok=false olur.
func UserFromContext(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}

// viewerID, varsa authenticated kullanıcının ID'sini, yoksa boş string döner.
// Aggregate/feed endpoint'lerinde "viewer" opsiyoneldir.
func viewerID(r *http.Request) string {
	if user, ok := UserFromContext(r); ok {
		return user.ID
	}
	return ""
}
