// Package dashboard assembles the payload of every dashboard screen from the
// two report feeds.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"dwh-dashboard/internal/format"
	"dwh-dashboard/internal/report"
	"dwh-dashboard/internal/source"
	"dwh-dashboard/internal/table"
)

const (
	overviewTop = 5
	pieSlices   = 7
	costBars    = 10
)

type Feed interface {
	Fetch(ctx context.Context, d source.Domain) ([]table.Row, error)
}

type Service struct {
	feed Feed
	fmt  *format.Formatter
	log  *slog.Logger
}

func New(feed Feed, f *format.Formatter, log *slog.Logger) *Service {
	return &Service{feed: feed, fmt: f, log: log}
}

// YieldBlock is the yield half of the general dashboard. Summary is nil and
// Error is set when the feed failed; an empty feed leaves both unset.
type YieldBlock struct {
	Summary *report.YieldSummary `json:"summary"`
	Chart   []report.MermaBar    `json:"chart"`
	Error   string               `json:"error,omitempty"`
}

// CostBlock is the cost half of the general dashboard.
type CostBlock struct {
	Summary *report.CostSummary `json:"summary"`
	Chart   []report.CostBar    `json:"chart"`
	Error   string              `json:"error,omitempty"`
}

type Overview struct {
	Screen      report.Screen `json:"screen"`
	Cards       []report.Card `json:"cards"`
	Rendimiento YieldBlock    `json:"rendimiento"`
	Costos      CostBlock     `json:"costos"`
}

type YieldScreen struct {
	Screen  report.Screen        `json:"screen"`
	Cards   []report.Card        `json:"cards"`
	Summary *report.YieldSummary `json:"summary"`
	Top     int                  `json:"top"`
	Chart   []report.YieldBar    `json:"chart"`
}

type CostScreen struct {
	Screen  report.Screen       `json:"screen"`
	Cards   []report.Card       `json:"cards"`
	Summary *report.CostSummary `json:"summary"`
	Pie     []report.Slice      `json:"pie"`
	Bars    []report.CostBar    `json:"bars"`
}

// Rows fetches and normalizes one domain.
func (s *Service) Rows(ctx context.Context, d source.Domain) ([]table.Row, error) {
	const op = "service.dashboard.Rows"

	raw, err := s.feed.Fetch(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch d {
	case source.Rendimiento:
		return report.NormalizeYield(raw), nil
	case source.Costos:
		return report.NormalizeCost(raw), nil
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, source.ErrUnknownDomain, d)
	}
}

// Overview fetches both feeds concurrently. A failing feed only blanks its
// own block.
func (s *Service) Overview(ctx context.Context) Overview {
	const op = "service.dashboard.Overview"

	log := s.log.With(slog.String("op", op))

	var yield YieldBlock
	var cost CostBlock

	// a feed failure is kept in its own block and never returned to the
	// group, so one domain cannot cancel or blank the other
	var g errgroup.Group
	g.Go(func() error {
		rows, err := s.Rows(ctx, source.Rendimiento)
		if err != nil {
			log.Error("rendimiento feed failed", slog.String("error", err.Error()))
			yield.Error = err.Error()
			return nil
		}
		if sum, ok := report.SummarizeYield(rows); ok {
			yield.Summary = &sum
		}
		yield.Chart = report.TopMerma(rows, overviewTop)
		return nil
	})
	g.Go(func() error {
		rows, err := s.Rows(ctx, source.Costos)
		if err != nil {
			log.Error("costos feed failed", slog.String("error", err.Error()))
			cost.Error = err.Error()
			return nil
		}
		if sum, ok := report.SummarizeCost(rows); ok {
			cost.Summary = &sum
		}
		cost.Chart = report.CostBreakdown(rows, overviewTop)
		return nil
	})
	_ = g.Wait()

	return Overview{
		Screen:      report.OverviewScreen,
		Cards:       report.OverviewCards(s.fmt, yield.Summary, cost.Summary),
		Rendimiento: yield,
		Costos:      cost,
	}
}

// Yield builds the yield screen with the first top products charted; top <= 0
// charts every product.
func (s *Service) Yield(ctx context.Context, top int) (YieldScreen, error) {
	const op = "service.dashboard.Yield"

	rows, err := s.Rows(ctx, source.Rendimiento)
	if err != nil {
		return YieldScreen{}, fmt.Errorf("%s: %w", op, err)
	}

	screen := YieldScreen{
		Screen: report.RendimientoScreen,
		Top:    top,
		Chart:  report.YieldChart(rows, top),
	}
	if sum, ok := report.SummarizeYield(rows); ok {
		screen.Summary = &sum
	}
	screen.Cards = report.YieldCards(s.fmt, screen.Summary)

	return screen, nil
}

func (s *Service) Costs(ctx context.Context) (CostScreen, error) {
	const op = "service.dashboard.Costs"

	rows, err := s.Rows(ctx, source.Costos)
	if err != nil {
		return CostScreen{}, fmt.Errorf("%s: %w", op, err)
	}

	screen := CostScreen{
		Screen: report.CostosScreen,
		Pie:    report.OvertimeShare(rows, pieSlices),
		Bars:   report.RoundBars(report.CostBreakdown(rows, costBars), 2),
	}
	if sum, ok := report.SummarizeCost(rows); ok {
		screen.Summary = &sum
	}
	screen.Cards = report.CostCards(s.fmt, screen.Summary)

	return screen, nil
}

// View builds a table view over one domain, starting from state.
func (s *Service) View(ctx context.Context, d source.Domain, state table.State) (*table.View, error) {
	const op = "service.dashboard.View"

	rows, err := s.Rows(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var columns []table.Column
	var keys []string
	switch d {
	case source.Rendimiento:
		columns, keys = report.YieldColumns(s.fmt), report.YieldSearchKeys
	default:
		columns, keys = report.CostColumns(s.fmt), report.CostSearchKeys
	}

	return table.NewView(rows, columns, keys, table.WithState(state), table.WithCollation(s.fmt.Tag())), nil
}

// Table applies a toggle (when not empty) to state and snapshots the view.
// The returned snapshot carries the resulting state for the next request.
func (s *Service) Table(ctx context.Context, d source.Domain, state table.State, toggle string) (table.Snapshot, error) {
	const op = "service.dashboard.Table"

	view, err := s.View(ctx, d, state)
	if err != nil {
		return table.Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	if toggle != "" {
		view.ToggleSort(toggle)
	}

	return view.Snapshot(), nil
}
