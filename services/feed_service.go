package services

import (
	"context"
	"fmt"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
)

// FeedService, aggregate tepki görünümü ve feed birleştirme iş mantığı.
//
// Aggregate: tek post için tür bazında sayılar + viewer'ın güncel türü.
// Sayılar her okumada reactions satırlarından türetilir — cache veya
// artımlı sayaç yok, görünüm ground truth'tan sapamaz.
//
// Feed / UserFeed: post'lar oluşturulma sırasıyla, her biri aggregate
// görünümüyle birleştirilmiş halde. Tepkisiz post'lar tüm sayıları 0
// olan bir görünümle döner, asla hata üretmez.
//
// viewerID boş string olabilir — anonim okuma; viewer_kind hiç dolmaz.
type FeedService interface {
	Aggregate(ctx context.Context, postID, viewerID string) (*models.ReactionAggregate, error)
	Feed(ctx context.Context, viewerID string) ([]models.FeedPost, error)
	UserFeed(ctx context.Context, userID, viewerID string) ([]models.FeedPost, error)
}

type feedService struct {
	postRepo     repository.PostRepository
	reactionRepo repository.ReactionRepository
	userRepo     repository.UserRepository
}

// NewFeedService, constructor.
func NewFeedService(
	postRepo repository.PostRepository,
	reactionRepo repository.ReactionRepository,
	userRepo repository.UserRepository,
) FeedService {
	return &feedService{
		postRepo:     postRepo,
		reactionRepo: reactionRepo,
		userRepo:     userRepo,
	}
}

// Aggregate, tek bir post'un tepki görünümünü hesaplar.
// Post yoksa 404 — silinmiş post için bayat sıfır sayılar DÖNMEZ.
func (s *feedService) Aggregate(ctx context.Context, postID, viewerID string) (*models.ReactionAggregate, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: post not found", pkg.ErrNotFound)
	}

	counts, err := s.reactionRepo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	agg := &models.ReactionAggregate{ReactionCounts: counts}

	if viewerID != "" {
		kind, err := s.reactionRepo.ViewerKind(ctx, postID, viewerID)
		if err != nil {
			return nil, err
		}
		agg.ViewerKind = kind
	}

	return agg, nil
}

// Feed, tüm post'ları aggregate görünümleriyle birleştirir.
func (s *feedService) Feed(ctx context.Context, viewerID string) ([]models.FeedPost, error) {
	posts, err := s.postRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// UserFeed, tek bir kullanıcının post'larını aggregate görünümleriyle döner.
// Kullanıcı yoksa 404.
func (s *feedService) UserFeed(ctx context.Context, userID, viewerID string) ([]models.FeedPost, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}

	posts, err := s.postRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, posts, viewerID)
}

// assemble, post listesini aggregate görünümlerle birleştirir.
//
// Batch yükleme: N post için tepki sayıları TEK gruplu sorguyla,
// viewer türleri TEK sorguyla gelir — post başına sorgu yok
// (O(posts + reactions), O(posts × kinds) değil).
func (s *feedService) assemble(ctx context.Context, posts []models.Post, viewerID string) ([]models.FeedPost, error) {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	countsByPost, err := s.reactionRepo.CountByPostIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var viewerKinds map[string]models.ReactionKind
	if viewerID != "" {
		viewerKinds, err = s.reactionRepo.ViewerKinds(ctx, ids, viewerID)
		if err != nil {
			return nil, err
		}
	}

	feed := make([]models.FeedPost, len(posts))
	for i, post := range posts {
		agg := models.ReactionAggregate{
			// CountByPostIDs her input id için entry garanti eder —
			// tepkisiz post'ta sayılar sıfır kalır.
			ReactionCounts: countsByPost[post.ID],
		}
		if kind, ok := viewerKinds[post.ID]; ok {
			k := kind
			agg.ViewerKind = &k
		}

		feed[i] = models.FeedPost{
			Post:              post,
			ReactionAggregate: agg,
		}
	}

	return feed, nil
}
