package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// sqlitePostRepo, PostRepository interface'inin SQLite implementasyonu.
type sqlitePostRepo struct {
	db database.TxQuerier
}

// NewSQLitePostRepo, constructor — interface döner.
func NewSQLitePostRepo(db database.TxQuerier) PostRepository {
	return &sqlitePostRepo{db: db}
}

func (r *sqlitePostRepo) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content, image_url, video_url)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		post.UserID,
		post.Content,
		post.ImageURL,
		post.VideoURL,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// postSelect, tüm post sorgularının ortak SELECT + JOIN kısmı.
// LEFT JOIN — kullanıcı silinmiş olsa bile post görünür.
const postSelect = `
	SELECT p.id, p.user_id, p.content, p.image_url, p.video_url, p.created_at, p.updated_at,
	       u.id, u.username, u.created_at
	FROM posts p
	LEFT JOIN users u ON p.user_id = u.id`

func (r *sqlitePostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id)

	post, err := scanPost(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// GetAll, tüm post'ları oluşturulma sırasıyla döner.
// created_at saniye çözünürlüklü olduğundan rowid ikincil kriterdir —
// aynı saniyede oluşan post'larda insert sırası korunur.
func (r *sqlitePostRepo) GetAll(ctx context.Context) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, postSelect+` ORDER BY p.created_at ASC, p.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *sqlitePostRepo) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		postSelect+` WHERE p.user_id = ? ORDER BY p.created_at ASC, p.rowid ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts by user: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *sqlitePostRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return true, nil
}

func (r *sqlitePostRepo) Update(ctx context.Context, post *models.Post) error {
	// Düzenleme: content güncelle + updated_at zaman damgası ekle.
	now := time.Now()
	query := `UPDATE posts SET content = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, post.Content, now, post.ID)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	post.UpdatedAt = &now
	return nil
}

func (r *sqlitePostRepo) Delete(ctx context.Context, id string) error {
	// ON DELETE CASCADE: post silindiğinde reaction'ları da silinir (DB tarafında).
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// scanPost, postSelect satırını Post'a çevirir.
// scan parametresi row.Scan veya rows.Scan olabilir.
func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	post := &models.Post{}
	var author models.User
	var authorID sql.NullString
	var authorUsername sql.NullString
	var authorCreatedAt sql.NullTime

	err := scan(
		&post.ID, &post.UserID, &post.Content, &post.ImageURL, &post.VideoURL,
		&post.CreatedAt, &post.UpdatedAt,
		&authorID, &authorUsername, &authorCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authorID.Valid {
		author.ID = authorID.String
		author.Username = authorUsername.String
		author.CreatedAt = authorCreatedAt.Time
		post.Author = &author
	}

	return post, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, nil
}
