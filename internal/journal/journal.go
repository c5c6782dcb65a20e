package journal

import (
	"context"
	"time"

	"codeberg.org/mutker/ipmictl/internal/errors"
	"codeberg.org/mutker/ipmictl/internal/logger"
	"github.com/google/uuid"
)

type service struct {
	repo   Repository
	logger logger.Logger
}

// No-op implementation
type noopRecorder struct{}

func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Journal disabled, using no-op recorder")
		return Noop(), nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Msg("Journal service initialized")

	return &service{
		repo:   repo,
		logger: log,
	}, nil
}

// Record stores entry, assigning an ID and timestamp when they are unset.
func (s *service) Record(ctx context.Context, entry *Entry) error {
	errFactory := errors.New()

	if entry == nil || !entry.Operation.IsValid() {
		return errFactory.New(ErrInvalidEntry)
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Insert(ctx, entry); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	s.logger.Debug().
		Str("id", entry.ID.String()).
		Str("operation", string(entry.Operation)).
		Bool("success", entry.Success).
		Msg("Journal entry recorded")

	return nil
}

// Recent returns up to limit entries, newest first.
func (s *service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "limit must be positive")
	}

	return s.repo.Recent(ctx, limit)
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}
	return nil
}

// Noop returns a Recorder that stores nothing.
func Noop() Recorder {
	return &noopRecorder{}
}

func (*noopRecorder) Record(_ context.Context, _ *Entry) error {
	return nil
}

func (*noopRecorder) Recent(_ context.Context, _ int) ([]Entry, error) {
	return nil, nil
}

func (*noopRecorder) Close() error {
	return nil
}
