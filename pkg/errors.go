// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error'lar sabit değer olarak tanımlanır, katmanlar arasında
// fmt.Errorf("%w: ...") ile sarılarak taşınır. Handler katmanı
// errors.Is() ile zinciri kontrol edip HTTP status'a çevirir:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner, handler pkg.Error() ile HTTP'ye map'ler.
//
// ErrForbidden: kaynak sahibi olmayan kullanıcı düzenleme/silme denediğinde.
// ErrAlreadyExists: username çakışması gibi uniqueness ihlallerinde.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
