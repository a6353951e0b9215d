package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

func TestPostCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	repo := NewSQLitePostRepo(db.Conn)

	img := "/api/uploads/x_photo.jpg"
	post := &models.Post{UserID: user.ID, Content: "medyalı post", ImageURL: &img}
	if err := repo.Create(ctx, post); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if post.ID == "" {
		t.Fatalf("expected ID to be assigned on create")
	}

	got, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Content != "medyalı post" {
		t.Fatalf("unexpected content: %q", got.Content)
	}
	if got.ImageURL == nil || *got.ImageURL != img {
		t.Fatalf("unexpected image url: %v", got.ImageURL)
	}
	if got.VideoURL != nil {
		t.Fatalf("expected nil video url, got %v", *got.VideoURL)
	}
	if got.UpdatedAt != nil {
		t.Fatalf("fresh post should not have updated_at")
	}
	// JOIN ile yazar bilgisi dolu gelir
	if got.Author == nil || got.Author.Username != "writer" {
		t.Fatalf("expected author to be joined, got %+v", got.Author)
	}
}

func TestPostGetAllInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	repo := NewSQLitePostRepo(db.Conn)

	want := []string{"bir", "iki", "üç", "dört"}
	for _, content := range want {
		if err := repo.Create(ctx, &models.Post{UserID: user.ID, Content: content}); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	posts, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all error: %v", err)
	}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	// Aynı saniyede oluşsalar bile insert sırası korunur
	for i, p := range posts {
		if p.Content != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], p.Content)
		}
	}
}

func TestPostUpdateAndOwnField(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	post := createTestPost(t, db, user.ID, "eski içerik")
	repo := NewSQLitePostRepo(db.Conn)

	post.Content = "yeni içerik"
	if err := repo.Update(ctx, post); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if post.UpdatedAt == nil {
		t.Fatalf("expected updated_at to be set")
	}

	got, err := repo.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Content != "yeni içerik" {
		t.Fatalf("unexpected content after update: %q", got.Content)
	}
	if got.UpdatedAt == nil {
		t.Fatalf("expected updated_at to persist")
	}
}

func TestPostDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "writer")
	post := createTestPost(t, db, user.ID, "silinecek")
	repo := NewSQLitePostRepo(db.Conn)

	if err := repo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	// Silinen post: GetByID 404, Exists false, tekrar Delete 404
	if _, err := repo.GetByID(ctx, post.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	exists, err := repo.Exists(ctx, post.ID)
	if err != nil {
		t.Fatalf("exists error: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false after delete")
	}
	if err := repo.Delete(ctx, post.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	repo := NewSQLiteUserRepo(db.Conn)
	if err := repo.Create(ctx, &models.User{Username: "taken", PasswordHash: "x"}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	err := repo.Create(ctx, &models.User{Username: "taken", PasswordHash: "y"})
	if !errors.Is(err, pkg.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
