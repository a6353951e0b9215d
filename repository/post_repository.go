package repository

import (
	"context"

	"github.com/akinalp/akis/models"
)

// PostRepository, post veritabanı işlemleri için interface.
//
// GetAll / GetByUserID oluşturulma sırasıyla döner (created_at, id ASC) —
// feed sıralaması budur, ek bir sort kriteri yoktur.
//
// Exists, toggle öncesi ucuz varlık kontrolü içindir: tüm post'u
// JOIN'lerle yüklemeye gerek yok.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Post, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
}
