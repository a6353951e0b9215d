package repository

import (
	"context"

	"github.com/akinalp/akis/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
//
// Exists, Toggle Engine'in ucuz kullanıcı varlık kontrolüdür —
// identity collaborator sözleşmesi budur, tüm satırı yüklemez.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
