// Package services, business logic katmanını barındırır.
//
// Service, handler (HTTP) ile repository (DB) arasında oturur.
// Service ASLA http.Request/Response bilmez — sadece domain modelleri
// alır/verir. Service ASLA doğrudan SQL çalıştırmaz — repository
// interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
)

// maxToggleAttempts, eşzamanlı toggle çakışmasında içeride kaç kez
// yeniden deneneceği. Çakışma caller'a yansıtılmaz; denemeler tükenirse
// transient internal error döner.
const maxToggleAttempts = 3

// ReactionService, tepki toggle iş mantığı interface'i (Toggle Engine).
//
// Toggle karar tablosu (tek-reaction modeli):
//   - tepki yok            → oluştur  → created
//   - aynı tür tekrar      → kaldır   → removed
//   - farklı tür           → değiştir → changed (from/to ile)
//
// Sonuç, işlem SONRASI viewer türünü ve güncel sayıları da taşır —
// handler ikinci bir okuma yapmadan yeni durumu raporlar.
type ReactionService interface {
	Toggle(ctx context.Context, postID, userID, kindToken string) (*models.ToggleOutcome, error)
}

type reactionService struct {
	reactionRepo   repository.ReactionRepository
	postRepo       repository.PostRepository
	userRepo       repository.UserRepository
	allowMultiKind bool
}

// NewReactionService, constructor.
//
// postRepo/userRepo: toggle öncesi varlık kontrolleri için gerekir —
// var olmayan post'a veya kullanıcıya tepki satırı yazılmaz.
// allowMultiKind: true ise kullanıcı aynı post'ta birden fazla tür
// tutabilir (her tür kendi içinde toggle edilir).
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	allowMultiKind bool,
) ReactionService {
	return &reactionService{
		reactionRepo:   reactionRepo,
		postRepo:       postRepo,
		userRepo:       userRepo,
		allowMultiKind: allowMultiKind,
	}
}

// Toggle, bir kullanıcının post üzerindeki tepkisini uygular.
//
// Akış:
//  1. Kind validation — tanınmayan token Toggle Engine'e ulaşmadan 400
//  2. Post varlık kontrolü — yoksa 404
//  3. Kullanıcı varlık kontrolü — yoksa 404
//  4. Karar tablosu (repository'de tek transaction içinde)
//  5. Güncel sayıları oku ve sonucu birleştir
//
// Eşzamanlılık: repository.ErrToggleConflict içeride yeniden denenir —
// iki eşzamanlı toggle asla iki satır oluşturamaz, caller çakışmayı görmez.
func (s *reactionService) Toggle(ctx context.Context, postID, userID, kindToken string) (*models.ToggleOutcome, error) {
	// 1. Kind validation
	kind, err := models.ParseReactionKind(kindToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Post var mı?
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: post not found", pkg.ErrNotFound)
	}

	// 3. Kullanıcı var mı?
	// Auth middleware kullanıcıyı zaten DB'den yükler ama Toggle Engine
	// kendi sözleşmesini kendisi korur — service başka yerden de çağrılabilir.
	exists, err = s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}

	// 4. Karar tablosu
	outcome, err := s.apply(ctx, postID, userID, kind)
	if err != nil {
		return nil, err
	}

	// 5. Güncel sayılar — toggle sonrası durum, caller'a tek seferde döner
	counts, err := s.reactionRepo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction counts after toggle: %w", err)
	}
	outcome.Counts = counts

	return outcome, nil
}

// apply, modele göre toggle'ı çalıştırır ve outcome iskeletini kurar.
func (s *reactionService) apply(ctx context.Context, postID, userID string, kind models.ReactionKind) (*models.ToggleOutcome, error) {
	if s.allowMultiKind {
		// Multi-kind modeli: tür bazında bağımsız toggle.
		// UNIQUE constraint DB seviyesinde koruduğu için retry gerekmez.
		added, err := s.reactionRepo.ToggleKind(ctx, postID, userID, kind)
		if err != nil {
			return nil, fmt.Errorf("failed to toggle reaction: %w", err)
		}

		outcome := &models.ToggleOutcome{Result: models.ToggleRemoved}
		if added {
			k := kind
			outcome.Result = models.ToggleCreated
			outcome.ViewerKind = &k
		}
		return outcome, nil
	}

	// Tek-reaction modeli: transaction'lı karar tablosu + bounded retry.
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		result, from, err := s.reactionRepo.Apply(ctx, postID, userID, kind)
		if errors.Is(err, repository.ErrToggleConflict) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to toggle reaction: %w", err)
		}

		outcome := &models.ToggleOutcome{Result: result}
		switch result {
		case models.ToggleCreated:
			k := kind
			outcome.ViewerKind = &k
		case models.ToggleChanged:
			k := kind
			outcome.From = from
			outcome.To = &k
			outcome.ViewerKind = &k
		case models.ToggleRemoved:
			// ViewerKind boş kalır — tepki artık yok
		}
		return outcome, nil
	}

	return nil, fmt.Errorf("%w: reaction toggle contention, retries exhausted", pkg.ErrInternal)
}
