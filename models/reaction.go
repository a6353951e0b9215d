// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. `json:"..."` tag'leri
// serialize/deserialize davranışını kontrol eder.
package models

import (
	"fmt"
	"time"
)

// ReactionKind, bir kullanıcının post'a verebileceği tepki türü.
// Kapalı bir kümedir — beş değer dışında hiçbir token kabul edilmez.
//
// Wire token'ları API sözleşmesinin parçasıdır ve DB'de de aynen
// saklanır. "hahaha" ve "🍅" token'ları tarihsel sözleşmedir; emoji
// token DB ve JSON boundary'sinden değişmeden geçmek zorundadır.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionLove    ReactionKind = "love"
	ReactionDislike ReactionKind = "dislike"
	ReactionFunny   ReactionKind = "hahaha"
	ReactionHate    ReactionKind = "🍅"
)

// AllReactionKinds, sabit sırayla tüm türler.
// Aggregate sonuçlarında her tür sayımı (sıfır dahil) bu liste üzerinden
// garanti edilir — frontend sabit bir buton satırı render eder.
var AllReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionLove,
	ReactionDislike,
	ReactionFunny,
	ReactionHate,
}

// ParseReactionKind, string token'ı doğrulayıp ReactionKind'a çevirir.
// Tanınmayan token validation hatasıdır — Toggle Engine'e hiç ulaşmaz.
func ParseReactionKind(s string) (ReactionKind, error) {
	kind := ReactionKind(s)
	for _, k := range AllReactionKinds {
		if kind == k {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown reaction kind: %q", s)
}

// Reaction, bir kullanıcının bir post'a verdiği tek bir tepkiyi temsil eder.
// DB'deki "reactions" tablosunun Go karşılığı — tekil gerçeklik kaynağı.
//
// Invariant: bir (post_id, user_id) çifti için en fazla bir satır bulunur
// (multi-kind modu kapalıyken). Satır yoktur ya da tek türdedir; tür
// değişimi satırı günceller, aynı türün tekrarı satırı siler.
type Reaction struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	UserID    string       `json:"user_id"`
	Kind      ReactionKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// ReactionCounts, bir post'un tür bazında tepki sayıları.
// JSON alan adları ilk API sözleşmesinden gelir (likes/loves/...).
// Her alan her zaman mevcuttur — tepkisiz post'ta hepsi 0 döner.
type ReactionCounts struct {
	Likes    int `json:"likes"`
	Loves    int `json:"loves"`
	Dislikes int `json:"dislikes"`
	Funny    int `json:"funny"`
	Hates    int `json:"hates"`
}

// Add, verilen türün sayacını n artırır.
// Aggregation sorgusunun GROUP BY sonuçlarını doldurmak için kullanılır.
func (c *ReactionCounts) Add(kind ReactionKind, n int) {
	switch kind {
	case ReactionLike:
		c.Likes += n
	case ReactionLove:
		c.Loves += n
	case ReactionDislike:
		c.Dislikes += n
	case ReactionFunny:
		c.Funny += n
	case ReactionHate:
		c.Hates += n
	}
}

// Get, verilen türün sayacını döner.
func (c *ReactionCounts) Get(kind ReactionKind) int {
	switch kind {
	case ReactionLike:
		return c.Likes
	case ReactionLove:
		return c.Loves
	case ReactionDislike:
		return c.Dislikes
	case ReactionFunny:
		return c.Funny
	case ReactionHate:
		return c.Hates
	}
	return 0
}

// Total, tüm türlerin toplamı — şu anda tepkisi olan kullanıcı sayısına
// eşittir (tek-reaction modeli sayesinde kullanıcı başına en fazla 1).
func (c *ReactionCounts) Total() int {
	return c.Likes + c.Loves + c.Dislikes + c.Funny + c.Hates
}

// ReactionAggregate, bir post'un türetilmiş (persist edilmeyen) tepki görünümü.
// Her okuma reactions satırlarından yeniden hesaplanır — cache yok,
// ground truth'tan sapamaz.
//
// ViewerKind yalnızca istekte kimliği belli bir viewer varsa ve o
// kullanıcının güncel bir tepkisi varsa dolar.
type ReactionAggregate struct {
	ReactionCounts
	ViewerKind *ReactionKind `json:"viewer_kind,omitempty"`
}

// ToggleResult, Toggle Engine'in karar tablosunun sonucu.
type ToggleResult string

const (
	ToggleCreated ToggleResult = "created" // Mevcut tepki yoktu, yenisi eklendi
	ToggleRemoved ToggleResult = "removed" // Aynı tür tekrar geldi, tepki kaldırıldı
	ToggleChanged ToggleResult = "changed" // Farklı tür geldi, tür değiştirildi
)

// ToggleOutcome, bir toggle işleminin tam sonucu.
// Counts ve ViewerKind işlem SONRASI durumu yansıtır — caller ikinci bir
// okuma yapmadan yeni durumu raporlayabilir.
type ToggleOutcome struct {
	Result     ToggleResult   `json:"result"`
	From       *ReactionKind  `json:"from,omitempty"` // Sadece changed'de: eski tür
	To         *ReactionKind  `json:"to,omitempty"`   // Sadece changed'de: yeni tür
	ViewerKind *ReactionKind  `json:"viewer_kind,omitempty"`
	Counts     ReactionCounts `json:"counts"`
}

// ToggleReactionRequest, toggle endpoint'inin beklediği JSON body.
// Kind token body'de gönderilir — emoji token URL path'te encoding
// sorunları yaratır.
type ToggleReactionRequest struct {
	Kind string `json:"kind"`
}
