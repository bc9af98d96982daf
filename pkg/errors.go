// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import (
	"errors"
	"fmt"
)

// Domain-level error'lar.
// Handler katmanı bu error'ları HTTP status code'larına map'ler.
// Service katmanı bunları döner, handler yakalar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)

// Mute domain error'ları.
//
// Her biri yukarıdaki base sentinel'lerden birini %w ile sarar.
// Böylece mapErrorToStatus hiç değişmeden doğru HTTP status'u bulur
// (errors.Is wrap chain'ini takip eder), service katmanı ise spesifik
// durumu errors.Is(err, pkg.ErrTopicAlreadyMuted) ile ayırt edebilir.
//
// ErrTopicNotMuted hem gerçekten mute edilmemiş topic'i hem de unmute
// sırasında çözümlenemeyen stream'i kapsar — kullanıcı açısından ikisi de
// "kaldırılacak bir mute yok" demektir, tek mesajda birleştirildi.
var (
	ErrTopicAlreadyMuted = fmt.Errorf("%w: topic already muted", ErrAlreadyExists)
	ErrTopicNotMuted     = fmt.Errorf("%w: topic is not muted", ErrNotFound)
	ErrUserAlreadyMuted  = fmt.Errorf("%w: user already muted", ErrAlreadyExists)
	ErrUserNotMuted      = fmt.Errorf("%w: user is not muted", ErrNotFound)
	ErrCannotMuteSelf    = fmt.Errorf("%w: cannot mute self", ErrBadRequest)
	ErrInvalidOperation  = fmt.Errorf("%w: invalid operation", ErrBadRequest)
)

// Resolution error'ları.
//
// "Invalid stream id" hem var olmayan hem de erişilemeyen stream'i kapsar —
// private stream'in varlığı error mesajından sızmaz. ErrNoSuchUser aynı
// şekilde var olmayan kullanıcıyı ve bot hedefini kapsar.
// ErrAmbiguousStreamRef, stream referansının tam-olarak-biri kuralının
// ihlalidir (ikisi birden veya hiçbiri gönderilmiş).
var (
	ErrInvalidStreamID    = fmt.Errorf("%w: invalid stream id", ErrBadRequest)
	ErrInvalidStreamName  = fmt.Errorf("%w: invalid stream name", ErrBadRequest)
	ErrNoSuchUser         = fmt.Errorf("%w: no such user", ErrBadRequest)
	ErrAmbiguousStreamRef = fmt.Errorf("%w: please supply exactly one of stream_id and stream", ErrBadRequest)
)
