package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/fluxion/internal/analytics"
	"github.com/alexanderramin/fluxion/internal/ledger"
	"github.com/alexanderramin/fluxion/internal/repository"
	"github.com/alexanderramin/fluxion/internal/testutil"
	"github.com/alexanderramin/fluxion/internal/timer"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fixture struct {
	db       *sql.DB
	clk      *testutil.FakeClock
	kv       *repository.SQLiteKVStore
	blocks   *repository.SQLiteRoutineBlockRepo
	engine   *timer.Engine
	ledger   *ledger.Ledger
	focus    FocusService
	routines RoutineService
	stats    StatsService
	state    StateService
	obs      *recordingObserver
}

func newFixture(t *testing.T, clk *testutil.FakeClock) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &fixture{
		db:     database,
		clk:    clk,
		kv:     repository.NewSQLiteKVStore(database),
		blocks: repository.NewSQLiteRoutineBlockRepo(database),
		obs:    &recordingObserver{},
	}
	engine, err := timer.New(context.Background(), f.kv, clk)
	require.NoError(t, err)
	f.engine = engine
	f.ledger = ledger.New(f.kv, f.blocks, clk)
	f.focus = NewFocusService(engine, f.ledger, f.obs)
	f.routines = NewRoutineService(f.blocks, testutil.NewTestUoW(database), clk, f.obs)
	f.stats = NewStatsService(analytics.New(engine, f.ledger, clk), engine)
	f.state = NewStateService(f.kv, engine, f.obs)
	return f
}
