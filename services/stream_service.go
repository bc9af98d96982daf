// Package services — StreamService: stream kataloğu ve erişim kontrolü.
//
// Erişim kuralı: public stream'ler herkese görünür, private stream'ler
// sadece abonelere. Erişilemeyen stream "yok" gibi davranır — private
// stream'in varlığı bile sızdırılmaz.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/akis/models"
	"github.com/akinalp/akis/pkg"
	"github.com/akinalp/akis/repository"
)

// StreamService, stream iş mantığı interface'i.
type StreamService interface {
	// CreateStream, yeni stream oluşturur ve oluşturanı abone yapar.
	CreateStream(ctx context.Context, user *models.User, name, description string, isPrivate bool) (*models.Stream, error)

	// ListStreams, kullanıcının görebildiği stream'leri döner.
	ListStreams(ctx context.Context, userID int64) ([]models.Stream, error)

	// Subscribe, kullanıcıyı stream'e abone eder. Private stream'e
	// davet mekanizması yoktur — var olan abonelik görünürlük verir.
	Subscribe(ctx context.Context, user *models.User, streamID int64) error

	// AccessStreamByID, ID ile stream'e erişim kontrolü yapar.
	// Stream yoksa VEYA kullanıcı göremiyorsa pkg.ErrInvalidStreamID —
	// iki durum aynı hatayla dönülür.
	AccessStreamByID(ctx context.Context, user *models.User, streamID int64) (*models.Stream, error)

	// AccessStreamByName, isim ile stream'e erişim kontrolü yapar.
	AccessStreamByName(ctx context.Context, user *models.User, name string) (*models.Stream, error)

	// AccessStreamForUnmuteByID, sadece varlık kontrolü yapar — görünürlük
	// kontrolü YOK. Aboneliğini veya erişimini kaybetmiş kullanıcı eski
	// mute kaydını yine de temizleyebilmelidir.
	AccessStreamForUnmuteByID(ctx context.Context, streamID int64) (*models.Stream, error)

	// AccessStreamForUnmuteByName, isim tabanlı gevşek çözümleme.
	AccessStreamForUnmuteByName(ctx context.Context, name string) (*models.Stream, error)
}

type streamService struct {
	streamRepo repository.StreamRepository
}

// NewStreamService, constructor — interface döner.
func NewStreamService(streamRepo repository.StreamRepository) StreamService {
	return &streamService{streamRepo: streamRepo}
}

func (s *streamService) CreateStream(ctx context.Context, user *models.User, name, description string, isPrivate bool) (*models.Stream, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: stream name is required", pkg.ErrBadRequest)
	}

	stream := &models.Stream{
		Name:        name,
		Description: strings.TrimSpace(description),
		IsPrivate:   isPrivate,
	}

	if err := s.streamRepo.Create(ctx, stream); err != nil {
		return nil, err // ErrAlreadyExists olabilir
	}

	if err := s.streamRepo.Subscribe(ctx, user.ID, stream.ID); err != nil {
		return nil, err
	}

	return stream, nil
}

func (s *streamService) ListStreams(ctx context.Context, userID int64) ([]models.Stream, error) {
	return s.streamRepo.ListForUser(ctx, userID)
}

func (s *streamService) Subscribe(ctx context.Context, user *models.User, streamID int64) error {
	stream, err := s.AccessStreamByID(ctx, user, streamID)
	if err != nil {
		return err
	}
	return s.streamRepo.Subscribe(ctx, user.ID, stream.ID)
}

func (s *streamService) AccessStreamByID(ctx context.Context, user *models.User, streamID int64) (*models.Stream, error) {
	stream, err := s.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrInvalidStreamID
		}
		return nil, err
	}

	if err := s.checkVisibility(ctx, user, stream, pkg.ErrInvalidStreamID); err != nil {
		return nil, err
	}
	return stream, nil
}

func (s *streamService) AccessStreamByName(ctx context.Context, user *models.User, name string) (*models.Stream, error) {
	stream, err := s.streamRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrInvalidStreamName
		}
		return nil, err
	}

	if err := s.checkVisibility(ctx, user, stream, pkg.ErrInvalidStreamName); err != nil {
		return nil, err
	}
	return stream, nil
}

func (s *streamService) AccessStreamForUnmuteByID(ctx context.Context, streamID int64) (*models.Stream, error) {
	stream, err := s.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrInvalidStreamID
		}
		return nil, err
	}
	return stream, nil
}

func (s *streamService) AccessStreamForUnmuteByName(ctx context.Context, name string) (*models.Stream, error) {
	stream, err := s.streamRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrInvalidStreamName
		}
		return nil, err
	}
	return stream, nil
}

// checkVisibility, private stream için abonelik şartını uygular.
// notVisibleErr: erişilemeyen stream ile var olmayan stream aynı hatayı
// döner — private stream'in varlığı sızmaz.
func (s *streamService) checkVisibility(ctx context.Context, user *models.User, stream *models.Stream, notVisibleErr error) error {
	if !stream.IsPrivate {
		return nil
	}

	subscribed, err := s.streamRepo.IsSubscribed(ctx, user.ID, stream.ID)
	if err != nil {
		return err
	}
	if !subscribed {
		return notVisibleErr
	}
	return nil
}
