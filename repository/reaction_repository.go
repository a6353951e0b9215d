// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: CRUD işlemleri interface arkasına soyutlanır.
// Service katmanı doğrudan SQL yazmaz — interface üzerinden çalışır.
// Go'da interface implicit'tir: struct, method set'i karşılıyorsa
// otomatik olarak interface'i sağlar.
package repository

import (
	"context"
	"errors"

	"github.com/akinalp/akis/models"
)

// ErrToggleConflict, Apply'ın transaction'ı içinde beklenen satır durumunun
// eşzamanlı bir yazma tarafından değiştirildiğini bildirir.
// Service katmanı bu hatayı caller'a SIZDIRMAZ — işlemi baştan dener.
var ErrToggleConflict = errors.New("reaction toggle conflict")

// ReactionRepository, reaction veritabanı işlemleri için interface.
// Tekil gerçeklik kaynağı reactions tablosudur; aggregate görünümler
// her okumada bu tablodan türetilir.
//
// Apply: Tek-reaction modeli. (post, user) için mevcut tepkiyi tek
// transaction içinde okur ve karar tablosunu uygular:
//   - satır yok            → INSERT, sonuç created
//   - satır var, aynı tür  → DELETE, sonuç removed (toggle-off)
//   - satır var, farklı tür→ UPDATE, sonuç changed (from döner)
//
// ToggleKind: Multi-kind modeli. (post, user, kind) bazında toggle —
// UNIQUE(post_id, user_id, kind) constraint'i sayesinde INSERT OR IGNORE
// + DELETE ikilisi yeterlidir. added=true eklendi, false kaldırıldı demek.
//
// CountByPostIDs / ViewerKinds: feed için batch yükleme. N post için N
// ayrı sorgu yerine IN (...) ile tek gruplu sorgu — N+1 problemi yok.
type ReactionRepository interface {
	Find(ctx context.Context, postID, userID string) (*models.Reaction, error)
	Apply(ctx context.Context, postID, userID string, kind models.ReactionKind) (models.ToggleResult, *models.ReactionKind, error)
	ToggleKind(ctx context.Context, postID, userID string, kind models.ReactionKind) (added bool, err error)
	CountByPostID(ctx context.Context, postID string) (models.ReactionCounts, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]models.ReactionCounts, error)
	ViewerKind(ctx context.Context, postID, userID string) (*models.ReactionKind, error)
	ViewerKinds(ctx context.Context, postIDs []string, userID string) (map[string]models.ReactionKind, error)
}
