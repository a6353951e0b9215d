package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/akis/database"
	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
)

// sqliteReactionRepo, ReactionRepository interface'inin SQLite implementasyonu.
//
// Diğer repo'lardan farklı olarak TxQuerier değil *sql.DB tutar:
// Apply kendi transaction'ını database.WithTx ile açmak zorundadır.
type sqliteReactionRepo struct {
	db *sql.DB
}

// NewSQLiteReactionRepo, constructor — interface döner.
func NewSQLiteReactionRepo(db *sql.DB) ReactionRepository {
	return &sqliteReactionRepo{db: db}
}

// Find, kullanıcının post üzerindeki mevcut tepkisini getirir.
// Tepki yoksa pkg.ErrNotFound döner.
func (r *sqliteReactionRepo) Find(ctx context.Context, postID, userID string) (*models.Reaction, error) {
	return findReaction(ctx, r.db, postID, userID)
}

// findReaction, TxQuerier üzerinden çalışır — hem *sql.DB hem *sql.Tx ile
// çağrılabilir. Apply transaction içinden aynı sorguyu kullanır.
func findReaction(ctx context.Context, q database.TxQuerier, postID, userID string) (*models.Reaction, error) {
	query := `
		SELECT id, post_id, user_id, kind, created_at
		FROM reactions
		WHERE post_id = ? AND user_id = ?`

	reaction := &models.Reaction{}
	err := q.QueryRowContext(ctx, query, postID, userID).Scan(
		&reaction.ID, &reaction.PostID, &reaction.UserID, &reaction.Kind, &reaction.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reaction: %w", err)
	}

	return reaction, nil
}

// Apply, tek-reaction modelinin karar tablosunu tek transaction içinde uygular.
//
// Atomicity: "oku → insert/update/delete" dizisi WithTx içinde çalışır.
// DSN'deki _txlock=immediate sayesinde transaction başlar başlamaz write
// lock alınır — iki eşzamanlı Apply aynı anda "satır yok" göremez.
// Yine de her yazma guard'lıdır (WHERE ... AND kind = eski tür) ve
// rowsAffected kontrol edilir: beklenen satır yoksa ErrToggleConflict
// döner, transaction rollback olur ve service işlemi baştan dener.
func (r *sqliteReactionRepo) Apply(ctx context.Context, postID, userID string, kind models.ReactionKind) (models.ToggleResult, *models.ReactionKind, error) {
	var result models.ToggleResult
	var from *models.ReactionKind

	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := findReaction(ctx, tx, postID, userID)
		if err != nil && !errors.Is(err, pkg.ErrNotFound) {
			return err
		}

		// Karar tablosu
		switch {
		case existing == nil:
			// Tepki yok → oluştur.
			// INSERT OR IGNORE: eşzamanlı bir create UNIQUE(post,user,kind)'a
			// takılırsa 0 satır etkilenir → conflict, retry.
			res, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO reactions (id, post_id, user_id, kind)
				VALUES (lower(hex(randomblob(8))), ?, ?, ?)`,
				postID, userID, string(kind))
			if err != nil {
				return fmt.Errorf("failed to insert reaction: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrToggleConflict
			}
			result = models.ToggleCreated

		case existing.Kind == kind:
			// Aynı tür tekrar geldi → toggle-off, satırı sil.
			res, err := tx.ExecContext(ctx, `
				DELETE FROM reactions
				WHERE post_id = ? AND user_id = ? AND kind = ?`,
				postID, userID, string(kind))
			if err != nil {
				return fmt.Errorf("failed to delete reaction: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrToggleConflict
			}
			result = models.ToggleRemoved

		default:
			// Farklı tür → mevcut satırın türünü değiştir.
			// Guard: eski tür hâlâ yerinde olmalı.
			res, err := tx.ExecContext(ctx, `
				UPDATE reactions SET kind = ?
				WHERE post_id = ? AND user_id = ? AND kind = ?`,
				string(kind), postID, userID, string(existing.Kind))
			if err != nil {
				return fmt.Errorf("failed to update reaction kind: %w", err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return ErrToggleConflict
			}
			oldKind := existing.Kind
			from = &oldKind
			result = models.ToggleChanged
		}

		return nil
	})

	if err != nil {
		return "", nil, err
	}

	return result, from, nil
}

// ToggleKind, multi-kind modelinde (post, user, kind) bazında toggle yapar.
//
// Strateji: INSERT OR IGNORE ile eklemeyi dene.
// rowsAffected == 0 → UNIQUE constraint nedeniyle eklenmedi → zaten var → sil.
// Bu pattern iki ayrı SELECT + INSERT/DELETE yerine constraint'e yaslanır;
// uniqueness DB seviyesinde korunduğu için ayrı transaction gerekmez.
func (r *sqliteReactionRepo) ToggleKind(ctx context.Context, postID, userID string, kind models.ReactionKind) (bool, error) {
	insertQuery := `
		INSERT OR IGNORE INTO reactions (id, post_id, user_id, kind)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, insertQuery, postID, userID, string(kind))
	if err != nil {
		return false, fmt.Errorf("toggle reaction insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("toggle reaction rows affected: %w", err)
	}

	if rowsAffected > 0 {
		return true, nil
	}

	deleteQuery := `DELETE FROM reactions WHERE post_id = ? AND user_id = ? AND kind = ?`
	if _, err := r.db.ExecContext(ctx, deleteQuery, postID, userID, string(kind)); err != nil {
		return false, fmt.Errorf("toggle reaction delete: %w", err)
	}

	return false, nil
}

// CountByPostID, bir post'un tür bazında tepki sayılarını döner.
//
// GROUP BY kind ile tek sorgu — tür başına ayrı COUNT sorgusu YOK.
// Sorguda görünmeyen türler struct'ın zero value'su sayesinde 0 kalır;
// beş tür her zaman mevcuttur.
func (r *sqliteReactionRepo) CountByPostID(ctx context.Context, postID string) (models.ReactionCounts, error) {
	var counts models.ReactionCounts

	rows, err := r.db.QueryContext(ctx, `
		SELECT kind, COUNT(*) FROM reactions
		WHERE post_id = ?
		GROUP BY kind`, postID)
	if err != nil {
		return counts, fmt.Errorf("failed to count reactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return counts, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		counts.Add(models.ReactionKind(kind), n)
	}

	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating reaction counts: %w", err)
	}

	return counts, nil
}

// CountByPostIDs, birden fazla post'un sayılarını batch olarak yükler.
//
// WHERE post_id IN (?, ?, ...) + GROUP BY post_id, kind ile tek sorgu.
// Input'taki HER post id map'te bulunur — tepkisiz post'lar sıfır
// sayılarla döner, feed assembler eksik key kontrolü yapmak zorunda kalmaz.
func (r *sqliteReactionRepo) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]models.ReactionCounts, error) {
	result := make(map[string]models.ReactionCounts, len(postIDs))
	for _, id := range postIDs {
		result[id] = models.ReactionCounts{}
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(postIDs))
	args := make([]any, len(postIDs))
	for i, id := range postIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT post_id, kind, COUNT(*) FROM reactions
		WHERE post_id IN (%s)
		GROUP BY post_id, kind`,
		strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions by posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, kind string
		var n int
		if err := rows.Scan(&postID, &kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan reaction count row: %w", err)
		}
		counts := result[postID]
		counts.Add(models.ReactionKind(kind), n)
		result[postID] = counts
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction count rows: %w", err)
	}

	return result, nil
}

// ViewerKind, viewer'ın post üzerindeki güncel tepki türünü döner.
// Tepki yoksa (nil, nil) — yokluk hata değildir, aggregate görünümünde
// viewer_kind alanı boş kalır.
func (r *sqliteReactionRepo) ViewerKind(ctx context.Context, postID, userID string) (*models.ReactionKind, error) {
	var kind string
	err := r.db.QueryRowContext(ctx, `
		SELECT kind FROM reactions
		WHERE post_id = ? AND user_id = ?`, postID, userID).Scan(&kind)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer kind: %w", err)
	}

	k := models.ReactionKind(kind)
	return &k, nil
}

// ViewerKinds, viewer'ın birden fazla post üzerindeki tepkilerini batch yükler.
// Return: map[postID] → kind. Tepkisiz post'lar map'te bulunmaz.
func (r *sqliteReactionRepo) ViewerKinds(ctx context.Context, postIDs []string, userID string) (map[string]models.ReactionKind, error) {
	result := make(map[string]models.ReactionKind)
	if len(postIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(postIDs))
	args := make([]any, 0, len(postIDs)+1)
	args = append(args, userID)
	for i, id := range postIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		SELECT post_id, kind FROM reactions
		WHERE user_id = ? AND post_id IN (%s)`,
		strings.Join(placeholders, ","))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get viewer kinds: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID, kind string
		if err := rows.Scan(&postID, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan viewer kind row: %w", err)
		}
		result[postID] = models.ReactionKind(kind)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating viewer kind rows: %w", err)
	}

	return result, nil
}
