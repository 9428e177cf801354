package service

import (
	"context"
	"time"

	"github.com/alexanderramin/fluxion/internal/analytics"
	"github.com/alexanderramin/fluxion/internal/domain"
	"github.com/alexanderramin/fluxion/internal/timer"
)

type statsService struct {
	agg    *analytics.Aggregator
	engine *timer.Engine
}

func NewStatsService(agg *analytics.Aggregator, engine *timer.Engine) StatsService {
	return &statsService{agg: agg, engine: engine}
}

func (s *statsService) DailySeries(ctx context.Context, days int) ([]domain.DailyData, error) {
	return s.agg.DailySeries(ctx, days)
}

func (s *statsService) CategoryDistribution(ctx context.Context) ([]domain.CategoryData, error) {
	return s.agg.CategoryDistribution(ctx)
}

func (s *statsService) Totals(ctx context.Context) (domain.Totals, error) {
	return s.agg.Totals(ctx)
}

func (s *statsService) MonthHeatmap(ctx context.Context, month time.Time) ([]domain.HeatmapDay, error) {
	return s.agg.MonthHeatmap(ctx, month)
}

func (s *statsService) GoalProgress(ctx context.Context) (domain.GoalProgress, error) {
	return s.agg.GoalProgress(ctx)
}

func (s *statsService) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	var err error
	if o.TodayFocusMinutes, err = s.engine.TodayFocusMinutes(ctx); err != nil {
		return nil, err
	}
	if o.WeekFocusMinutes, err = s.engine.WeekFocusMinutes(ctx); err != nil {
		return nil, err
	}
	if o.Goal, err = s.agg.GoalProgress(ctx); err != nil {
		return nil, err
	}
	if o.Totals, err = s.agg.Totals(ctx); err != nil {
		return nil, err
	}
	return &o, nil
}
