package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/fluxion/internal/clock"
	"github.com/alexanderramin/fluxion/internal/db"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/repository"
	"github.com/alexanderramin/fluxion/internal/routine"
	"github.com/google/uuid"
)

type routineService struct {
	blocks   repository.RoutineBlockRepo
	uow      db.UnitOfWork
	clock    clock.Clock
	observer UseCaseObserver
}

func NewRoutineService(
	blocks repository.RoutineBlockRepo,
	uow db.UnitOfWork,
	clk clock.Clock,
	observers ...UseCaseObserver,
) RoutineService {
	return &routineService{
		blocks:   blocks,
		uow:      uow,
		clock:    clk,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *routineService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	observeUseCase(ctx, s.observer, name, startedAt, fields, err)
}

// Add validates b, rejects overlaps on the same day, and stores it with a
// fresh id when b has none.
func (s *routineService) Add(ctx context.Context, b *domain.RoutineBlock) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"title": b.Title, "day": b.Day}
	defer func() { s.observe(ctx, "add-block", startedAt, fields, err) }()

	if err = routine.Validate(b); err != nil {
		return err
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	fields["block_id"] = b.ID
	if err = s.checkConflict(ctx, b.Day, b.StartHour, b.DurationHours, b.ID); err != nil {
		return err
	}
	now := s.clock.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	return s.blocks.Create(ctx, b)
}

func (s *routineService) Update(ctx context.Context, b *domain.RoutineBlock) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"block_id": b.ID}
	defer func() { s.observe(ctx, "update-block", startedAt, fields, err) }()

	if err = routine.Validate(b); err != nil {
		return err
	}
	if err = s.checkConflict(ctx, b.Day, b.StartHour, b.DurationHours, b.ID); err != nil {
		return err
	}
	b.UpdatedAt = s.clock.Now().UTC()
	return s.blocks.Update(ctx, b)
}

func (s *routineService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "delete-block", startedAt, map[string]any{"block_id": id}, err) }()

	return s.blocks.Delete(ctx, id)
}

// Move reschedules a block to another day and start hour, keeping its
// minute and duration.
func (s *routineService) Move(ctx context.Context, id string, day time.Weekday, startHour int) (b *domain.RoutineBlock, err error) {
	startedAt := time.Now()
	fields := map[string]any{"block_id": id, "day": int(day), "start_hour": startHour}
	defer func() { s.observe(ctx, "move-block", startedAt, fields, err) }()

	b, err = s.blocks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Day = int(day)
	b.StartHour = startHour
	if err = routine.Validate(b); err != nil {
		return nil, err
	}
	if err = s.checkConflict(ctx, b.Day, b.StartHour, b.DurationHours, b.ID); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.clock.Now().UTC()
	if err = s.blocks.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *routineService) checkConflict(ctx context.Context, day, startHour int, duration float64, excludeID string) error {
	blocks, err := s.blocks.ListByDay(ctx, time.Weekday(day))
	if err != nil {
		return err
	}
	if other := routine.FindConflict(blocks, day, startHour, duration, excludeID); other != nil {
		return fmt.Errorf("%w: %q starts at %02d:%02d", routine.ErrConflict, other.Title, other.StartHour, other.StartMinute)
	}
	return nil
}

func (s *routineService) Get(ctx context.Context, id string) (*domain.RoutineBlock, error) {
	return s.blocks.GetByID(ctx, id)
}

func (s *routineService) List(ctx context.Context) ([]*domain.RoutineBlock, error) {
	return s.blocks.List(ctx)
}

func (s *routineService) BlocksForDay(ctx context.Context, day time.Weekday) ([]*domain.RoutineBlock, error) {
	blocks, err := s.blocks.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	routine.SortByStart(blocks)
	return blocks, nil
}

func (s *routineService) HasConflict(ctx context.Context, day time.Weekday, startHour int, durationHours float64, excludeID string) (bool, error) {
	blocks, err := s.blocks.ListByDay(ctx, day)
	if err != nil {
		return false, err
	}
	return routine.HasConflict(blocks, int(day), startHour, durationHours, excludeID), nil
}

func (s *routineService) WeeklyHoursByCategory(ctx context.Context) (map[domain.Category]float64, error) {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return nil, err
	}
	return routine.HoursByCategory(blocks), nil
}

// ImportYAML replaces the whole catalog with the blocks in r. Nothing is
// written unless every entry validates.
func (s *routineService) ImportYAML(ctx context.Context, r io.Reader) (res *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "import-routine", startedAt, fields, err) }()

	var file *routine.CatalogFile
	file, err = routine.DecodeCatalog(r)
	if err != nil {
		return nil, err
	}
	if err = routine.ValidateFile(file); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	blocks := make([]*domain.RoutineBlock, 0, len(file.Blocks))
	for _, e := range file.Blocks {
		b, convErr := routine.FromEntry(e, uuid.New().String(), now)
		if convErr != nil {
			err = convErr
			return nil, err
		}
		blocks = append(blocks, b)
	}

	res = &ImportResult{Imported: len(blocks)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txBlocks := repository.NewSQLiteRoutineBlockRepo(tx)
		existing, err := txBlocks.List(ctx)
		if err != nil {
			return err
		}
		res.Replaced = len(existing)
		if err := txBlocks.DeleteAll(ctx); err != nil {
			return err
		}
		for _, b := range blocks {
			if err := txBlocks.Create(ctx, b); err != nil {
				return fmt.Errorf("creating block %q: %w", b.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing routine: %w", err)
	}
	fields["imported"] = res.Imported
	fields["replaced"] = res.Replaced
	return res, nil
}

func (s *routineService) ExportYAML(ctx context.Context, w io.Writer) error {
	blocks, err := s.blocks.List(ctx)
	if err != nil {
		return err
	}
	return routine.EncodeCatalog(w, blocks)
}
