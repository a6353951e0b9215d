package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Post, bir kullanıcı gönderisini temsil eder.
// DB'deki "posts" tablosunun Go karşılığı.
//
// Author alanı JOIN ile doldurulur — DB'de ayrı tablodadır ama API
// response'unda birlikte döner, frontend tek istekle yazar bilgisini alır.
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	ImageURL  *string    `json:"image_url"`  // Nullable — sadece metin post'larında nil
	VideoURL  *string    `json:"video_url"`  // Nullable
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"` // Düzenlendiyse zaman damgası
	Author    *User      `json:"author,omitempty"`
}

// FeedPost, feed görünümü: post alanları + aggregate tepki görünümü.
// İki struct da embedded — JSON'da alanlar düz (flat) birleşir.
type FeedPost struct {
	Post
	ReactionAggregate
}

// CreatePostRequest, yeni post oluşturma isteği.
// Medya dosyaları multipart form'dan ayrı okunur; bu struct sadece
// metin alanını taşır.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// Validate, içeriğin 1-2000 karakter arası olduğunu kontrol eder.
func (r *CreatePostRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("post content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("post content must be at most 2000 characters")
	}
	return nil
}

// UpdatePostRequest, post düzenleme isteği.
// Sadece içerik düzenlenebilir — medya değişimi yeni post demektir.
type UpdatePostRequest struct {
	Content string `json:"content"`
}

// Validate, UpdatePostRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdatePostRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("post content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("post content must be at most 2000 characters")
	}
	return nil
}
