package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	storage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LoungeService/internal/service/reservations/models"
)

// Service сервис чтения и отмены бронирований.
// Авторизация (владелец ли вызывающий) — ответственность этого слоя,
// хранилище её не проверяет.
type Service struct {
	reservationRepo ReservationRepository
	notifier        ChangeNotifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo ReservationRepository, notifier ChangeNotifier, logger Logger) *Service {
	return &Service{
		reservationRepo: repo,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно только владельцу бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, principal.ID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !res.IsOwnedBy(principal) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", principal.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает бронирования пользователя.
// Пользователь может смотреть только свой список.
func (s *Service) GetUserReservations(ctx context.Context, userID int64, principal domain.Principal) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", userID)

	if userID != principal.ID {
		s.logger.Warn("GetUserReservations: access denied for user=%d to list of user=%d", principal.ID, userID)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(list), userID)
	return models.FromDomainReservationList(list), nil
}

// Cancel отменяет бронирование владельца: физическое удаление строки
// (cancel-and-recreate, истории отмен нет). Отсутствующее бронирование —
// ErrReservationNotFound, отличимый от успеха исход.
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, principal.ID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !res.IsOwnedBy(principal) {
		s.logger.Warn("Cancel: access denied for user=%d to reservation id=%d", principal.ID, id)
		return ErrAccessDenied
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			// Конкурирующая отмена успела первой
			s.logger.Warn("Cancel: reservation id=%d already gone", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)

	// Уведомление после успешного удаления; публикация не влияет на исход
	s.notifier.ReservationChanged(res.StartTime)
	return nil
}
