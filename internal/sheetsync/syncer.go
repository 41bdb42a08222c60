package sheetsync

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const publishTimeout = 30 * time.Second

// Options параметры очереди и повторов синхронизатора
type Options struct {
	Workers      int
	QueueSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Syncer асинхронный синхронизатор внешней таблицы. Принимает уведомления об
// изменениях через ReservationChanged и публикует полную сетку дня в фоне.
// Сбой публикации не влияет на судьбу бронирования: ошибка логируется и
// глотается. Очередной успешный пересчёт перезапишет устаревшую таблицу.
type Syncer struct {
	projector *Projector
	sink      Sink
	metrics   Metrics
	logger    Logger

	maxRetries   int
	retryBackoff time.Duration

	queue chan time.Time
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewSyncer создает синхронизатор и запускает пул воркеров
func NewSyncer(projector *Projector, sink Sink, metrics Metrics, logger Logger, opts Options) *Syncer {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = time.Second
	}

	s := &Syncer{
		projector:    projector,
		sink:         sink,
		metrics:      metrics,
		logger:       logger,
		maxRetries:   opts.MaxRetries,
		retryBackoff: opts.RetryBackoff,
		queue:        make(chan time.Time, opts.QueueSize),
	}

	s.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go s.worker()
	}

	return s
}

// ReservationChanged ставит дату изменённого бронирования в очередь на
// публикацию. Не блокирует вызывающего: при переполненной очереди событие
// отбрасывается с предупреждением, следующее событие того же дня догонит.
func (s *Syncer) ReservationChanged(date time.Time) {
	select {
	case s.queue <- date:
	default:
		s.logger.Warn("sheetsync: queue full, dropping change event for %s", date.Format("2006-01-02"))
	}
}

// SyncNow синхронно публикует сетку на дату. Используется админским
// эндпоинтом принудительной синхронизации.
func (s *Syncer) SyncNow(ctx context.Context, date time.Time) error {
	return s.publish(ctx, date)
}

// Close останавливает приём событий и дожидается воркеров.
// События, уже стоящие в очереди, будут опубликованы.
func (s *Syncer) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *Syncer) worker() {
	defer s.wg.Done()
	for date := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.publishWithRetry(ctx, date); err != nil {
			s.logger.Error("sheetsync: giving up on %s: %v", date.Format("2006-01-02"), err)
		}
		cancel()
	}
}

func (s *Syncer) publishWithRetry(ctx context.Context, date time.Time) error {
	backoff := s.retryBackoff

	var err error
	for attempt := 0; ; attempt++ {
		err = s.publish(ctx, date)
		if err == nil {
			return nil
		}
		if attempt >= s.maxRetries {
			return err
		}

		s.logger.Warn("sheetsync: publish attempt %d for %s failed, retrying in %s: %v",
			attempt+1, date.Format("2006-01-02"), backoff, err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", err, ctx.Err())
		}
		backoff *= 2
	}
}

func (s *Syncer) publish(ctx context.Context, date time.Time) error {
	start := time.Now()

	grid, err := s.projector.RenderGrid(ctx, date)
	if err == nil {
		err = s.sink.PublishGrid(ctx, grid)
	}

	if s.metrics != nil {
		s.metrics.ObserveSheetSync(err == nil, time.Since(start))
	}

	if err != nil {
		return err
	}

	s.logger.Info("sheetsync: published grid for %s in %s", grid.Date.Format("2006-01-02"), time.Since(start))
	return nil
}
