package services

import (
	"context"
	"fmt"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
)

// PostService, post iş mantığı interface'i.
//
// Ownership kuralı: bir post'u sadece sahibi düzenleyebilir/silebilir.
// İhlal ErrForbidden ile döner — handler 403'e çevirir.
type PostService interface {
	Create(ctx context.Context, userID string, req *models.CreatePostRequest, imageURL, videoURL *string) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, postID, userID string, req *models.UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, postID, userID string) error
}

type postService struct {
	postRepo repository.PostRepository
}

// NewPostService, constructor.
func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

// Create, yeni post oluşturur.
// imageURL/videoURL, handler'ın UploadService ile kaydettiği medyanın
// public URL'leridir — medyasız post'ta nil gelir.
func (s *postService) Create(ctx context.Context, userID string, req *models.CreatePostRequest, imageURL, videoURL *string) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: imageURL,
		VideoURL: videoURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.GetAll(ctx)
}

// Update, post içeriğini düzenler — sadece sahibi.
func (s *postService) Update(ctx context.Context, postID, userID string, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, fmt.Errorf("%w: you can only edit your own posts", pkg.ErrForbidden)
	}

	post.Content = req.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete, post'u siler — sadece sahibi.
// Reaction'lar DB'deki ON DELETE CASCADE ile birlikte silinir; silinen
// post'un aggregate'i sonraki okumada 404 olur, bayat sıfırlar dönmez.
func (s *postService) Delete(ctx context.Context, postID, userID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own posts", pkg.ErrForbidden)
	}

	return s.postRepo.Delete(ctx, postID)
}
