package repository

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// newTestDB, her test için izole, dosya bazlı bir SQLite açar.
// Embedded migration'lar gerçek şemayı kurar — test şeması ile üretim
// şeması ayrışamaz. t.TempDir() test bitince dosyayı temizler.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		t.Fatalf("failed to open embedded migrations: %v", err)
	}

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser, FK'lar için gerçek bir kullanıcı satırı oluşturur.
func createTestUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x"}
	if err := NewSQLiteUserRepo(db.Conn).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// createTestPost, FK'lar için gerçek bir post satırı oluşturur.
func createTestPost(t *testing.T, db *database.DB, userID, content string) *models.Post {
	t.Helper()

	post := &models.Post{UserID: userID, Content: content}
	if err := NewSQLitePostRepo(db.Conn).Create(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

// countReactionRows, (post, user) çiftinin DB'deki satır sayısını döner.
func countReactionRows(t *testing.T, db *database.DB, postID, userID string) int {
	t.Helper()

	var n int
	err := db.Conn.QueryRow(
		`SELECT COUNT(*) FROM reactions WHERE post_id = ? AND user_id = ?`,
		postID, userID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("failed to count reaction rows: %v", err)
	}
	return n
}

func TestReactionApplyDecisionTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "reactor")
	post := createTestPost(t, db, user.ID, "ilk post")
	repo := NewSQLiteReactionRepo(db.Conn)

	// Tepki yok → created
	result, from, err := repo.Apply(ctx, post.ID, user.ID, models.ReactionLike)
	if err != nil {
		t.Fatalf("apply (create) error: %v", err)
	}
	if result != models.ToggleCreated || from != nil {
		t.Fatalf("expected created/nil, got %s/%v", result, from)
	}
	if n := countReactionRows(t, db, post.ID, user.ID); n != 1 {
		t.Fatalf("expected 1 reaction row, got %d", n)
	}

	// Farklı tür → changed, from eski türü taşır
	result, from, err = repo.Apply(ctx, post.ID, user.ID, models.ReactionHate)
	if err != nil {
		t.Fatalf("apply (change) error: %v", err)
	}
	if result != models.ToggleChanged {
		t.Fatalf("expected changed, got %s", result)
	}
	if from == nil || *from != models.ReactionLike {
		t.Fatalf("expected from=like, got %v", from)
	}
	// Hâlâ tek satır — tür değişimi yeni satır açmaz
	if n := countReactionRows(t, db, post.ID, user.ID); n != 1 {
		t.Fatalf("expected 1 reaction row after change, got %d", n)
	}

	existing, err := repo.Find(ctx, post.ID, user.ID)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if existing.Kind != models.ReactionHate {
		t.Fatalf("expected kind 🍅 after change, got %s", existing.Kind)
	}

	// Aynı tür tekrar → removed, satır silinir
	result, from, err = repo.Apply(ctx, post.ID, user.ID, models.ReactionHate)
	if err != nil {
		t.Fatalf("apply (remove) error: %v", err)
	}
	if result != models.ToggleRemoved || from != nil {
		t.Fatalf("expected removed/nil, got %s/%v", result, from)
	}
	if n := countReactionRows(t, db, post.ID, user.ID); n != 0 {
		t.Fatalf("expected 0 reaction rows after remove, got %d", n)
	}

	if _, err := repo.Find(ctx, post.ID, user.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestReactionToggleKindMultiKind(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "multi")
	post := createTestPost(t, db, user.ID, "multi post")
	repo := NewSQLiteReactionRepo(db.Conn)

	// İki farklı tür bağımsız yaşar
	added, err := repo.ToggleKind(ctx, post.ID, user.ID, models.ReactionLike)
	if err != nil || !added {
		t.Fatalf("expected like added, got added=%v err=%v", added, err)
	}
	added, err = repo.ToggleKind(ctx, post.ID, user.ID, models.ReactionFunny)
	if err != nil || !added {
		t.Fatalf("expected hahaha added, got added=%v err=%v", added, err)
	}
	if n := countReactionRows(t, db, post.ID, user.ID); n != 2 {
		t.Fatalf("expected 2 rows in multi-kind mode, got %d", n)
	}

	// Aynı türün tekrarı sadece o türü kaldırır
	added, err = repo.ToggleKind(ctx, post.ID, user.ID, models.ReactionLike)
	if err != nil || added {
		t.Fatalf("expected like removed, got added=%v err=%v", added, err)
	}
	if n := countReactionRows(t, db, post.ID, user.ID); n != 1 {
		t.Fatalf("expected 1 row after removing like, got %d", n)
	}

	counts, err := repo.CountByPostID(ctx, post.ID)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if counts.Funny != 1 || counts.Likes != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestReactionCountByPostID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "sayılacak post")
	repo := NewSQLiteReactionRepo(db.Conn)

	// Üç kullanıcı: 2 like, 1 🍅
	for i, kind := range []models.ReactionKind{models.ReactionLike, models.ReactionLike, models.ReactionHate} {
		u := createTestUser(t, db, "voter"+string(rune('a'+i)))
		if _, _, err := repo.Apply(ctx, post.ID, u.ID, kind); err != nil {
			t.Fatalf("apply error: %v", err)
		}
	}

	counts, err := repo.CountByPostID(ctx, post.ID)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if counts.Likes != 2 || counts.Hates != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	// Tepki almamış türler 0 — alan yine de mevcut
	if counts.Loves != 0 || counts.Dislikes != 0 || counts.Funny != 0 {
		t.Fatalf("expected zero for untouched kinds: %+v", counts)
	}
}

func TestReactionCountByPostIDsSeedsEveryInput(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	withReactions := createTestPost(t, db, author.ID, "tepkili")
	without := createTestPost(t, db, author.ID, "tepkisiz")
	repo := NewSQLiteReactionRepo(db.Conn)

	voter := createTestUser(t, db, "voter")
	if _, _, err := repo.Apply(ctx, withReactions.ID, voter.ID, models.ReactionFunny); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	result, err := repo.CountByPostIDs(ctx, []string{withReactions.ID, without.ID})
	if err != nil {
		t.Fatalf("batch count error: %v", err)
	}

	// Tepkisiz post da map'te — sıfır sayılarla
	counts, ok := result[without.ID]
	if !ok {
		t.Fatalf("reactionless post missing from batch result")
	}
	if counts.Total() != 0 {
		t.Fatalf("reactionless post should have zero counts, got %+v", counts)
	}

	if result[withReactions.ID].Funny != 1 {
		t.Fatalf("unexpected counts for reacted post: %+v", result[withReactions.ID])
	}

	// Boş input → boş map, hata yok
	empty, err := repo.CountByPostIDs(ctx, nil)
	if err != nil {
		t.Fatalf("empty batch count error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty map for empty input, got %v", empty)
	}
}

func TestReactionViewerKinds(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	p1 := createTestPost(t, db, author.ID, "bir")
	p2 := createTestPost(t, db, author.ID, "iki")
	repo := NewSQLiteReactionRepo(db.Conn)

	if _, _, err := repo.Apply(ctx, p1.ID, viewer.ID, models.ReactionLove); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	// Tekil: tepkisiz post'ta (nil, nil)
	kind, err := repo.ViewerKind(ctx, p2.ID, viewer.ID)
	if err != nil {
		t.Fatalf("viewer kind error: %v", err)
	}
	if kind != nil {
		t.Fatalf("expected nil viewer kind for unreacted post, got %v", *kind)
	}

	kind, err = repo.ViewerKind(ctx, p1.ID, viewer.ID)
	if err != nil {
		t.Fatalf("viewer kind error: %v", err)
	}
	if kind == nil || *kind != models.ReactionLove {
		t.Fatalf("expected love, got %v", kind)
	}

	// Batch: sadece tepkili post map'te bulunur
	kinds, err := repo.ViewerKinds(ctx, []string{p1.ID, p2.ID}, viewer.ID)
	if err != nil {
		t.Fatalf("viewer kinds error: %v", err)
	}
	if len(kinds) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(kinds))
	}
	if kinds[p1.ID] != models.ReactionLove {
		t.Fatalf("expected love for p1, got %v", kinds[p1.ID])
	}
}

func TestReactionCascadeOnPostDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	voter := createTestUser(t, db, "voter")
	post := createTestPost(t, db, author.ID, "silinecek")

	reactionRepo := NewSQLiteReactionRepo(db.Conn)
	postRepo := NewSQLitePostRepo(db.Conn)

	if _, _, err := reactionRepo.Apply(ctx, post.ID, voter.ID, models.ReactionDislike); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if err := postRepo.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	// FK cascade: reaction satırları post'la birlikte gitti
	if n := countReactionRows(t, db, post.ID, voter.ID); n != 0 {
		t.Fatalf("expected reactions cascade-deleted, got %d rows", n)
	}
}
