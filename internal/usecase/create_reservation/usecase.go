package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LoungeService/internal/domain"
	loungeStorage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/lounge"
	storage "github.com/m04kA/SMC-LoungeService/internal/infra/storage/reservation"
)

// UseCase use case бронирования слота: валидация → допустимость слота →
// проверка конфликтов → атомарная вставка. Терминальные исходы — созданное
// бронирование либо одна из ошибок закрытой таксономии (errors.go).
type UseCase struct {
	reservationRepo ReservationRepository
	loungeRepo      LoungeRepository
	calendar        SlotCalendar
	txManager       TransactionManager
	notifier        ChangeNotifier
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo ReservationRepository,
	loungeRepo LoungeRepository,
	calendar SlotCalendar,
	txManager TransactionManager,
	notifier ChangeNotifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: repo,
		loungeRepo:      loungeRepo,
		calendar:        calendar,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет попытку бронирования.
// Шаги 1–3 не держат блокировок; шаги 4–6 выполняются в сериализуемой
// транзакции, при этом последним арбитром занятости слота остаётся уникальный
// constraint хранилища — победитель определяется порядком коммитов, а не
// порядком поступления запросов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, lounge=%d, start=%s",
		req.Principal.ID, req.LoungeID, req.Start)

	// 1. Валидация формы запроса и парсинг времени начала
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	start, err := parseStart(req.Start, uc.calendar.Location())
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}
	end := start.Add(uc.calendar.SlotDuration())

	// Текущее время фиксируется один раз, чтобы все проверки запроса
	// видели одно и то же "сейчас"
	now := uc.timeProvider.Now()

	// Лаунж должен существовать (входные данные, а не конфликт)
	lng, err := uc.loungeRepo.GetByID(ctx, req.LoungeID)
	if err != nil {
		if errors.Is(err, loungeStorage.ErrLoungeNotFound) {
			uc.logger.Warn("CreateReservation: lounge id=%d not found", req.LoungeID)
			return nil, ErrLoungeNotFound
		}
		uc.logger.Error("CreateReservation: failed to get lounge id=%d: %v", req.LoungeID, err)
		return nil, fmt.Errorf("%w: failed to get lounge: %v", ErrInternal, err)
	}

	// 2. start должен быть началом допустимого слота своей даты
	if !uc.calendar.Contains(start) {
		uc.logger.Warn("CreateReservation: start=%s is not an allowed slot", req.Start)
		return nil, ErrNotAnAllowedSlot
	}

	// 3. Слот не должен быть завершившимся: бронировать идущий слот можно,
	// пока его конец в будущем
	if !end.After(now) {
		uc.logger.Warn("CreateReservation: slot start=%s is in the past", req.Start)
		return nil, ErrSlotInPast
	}

	var result *domain.Reservation

	// 4–6. Проверки конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4. Слот свободен в этом лаунже
		_, err := uc.reservationRepo.GetByLoungeAndStart(txCtx, req.LoungeID, start)
		if err == nil {
			return ErrSlotTaken
		}
		if !errors.Is(err, storage.ErrReservationNotFound) {
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}

		// 5. У владельца нет пересекающегося бронирования ни в одном лаунже
		overlapping, err := uc.reservationRepo.GetOverlappingForUser(txCtx, req.Principal.ID, start, end)
		if err != nil {
			return fmt.Errorf("%w: failed to check owner overlap: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return ErrOwnerDoubleBooked
		}

		// 6. Атомарная вставка; конфликт уникального constraint означает,
		// что конкурирующий запрос зафиксировался первым
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			LoungeID:         req.LoungeID,
			UserID:           req.Principal.ID,
			UserName:         req.Principal.DisplayName,
			ParticipantNames: req.ParticipantNames,
			StartTime:        start,
			EndTime:          end,
		})
		if err != nil {
			if errors.Is(err, storage.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("CreateReservation: slot taken, lounge=%d start=%s", req.LoungeID, req.Start)
		case errors.Is(err, ErrOwnerDoubleBooked):
			uc.logger.Warn("CreateReservation: owner double booked, user=%d start=%s", req.Principal.ID, req.Start)
		default:
			uc.logger.Error("CreateReservation: failed for user=%d: %v", req.Principal.ID, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 7. Уведомление синхронизатора строго после фиксации транзакции;
	// публикация не блокирует и не влияет на исход запроса
	uc.notifier.ReservationChanged(result.StartTime)

	return &Response{
		ID:               result.ID,
		LoungeID:         result.LoungeID,
		LoungeNumber:     lng.Number,
		UserID:           result.UserID,
		UserName:         result.UserName,
		ParticipantNames: result.ParticipantNames,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		CreatedAt:        result.CreatedAt,
	}, nil
}
