package dataset

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"opportunity-insights-go/internal/logger"
	"opportunity-insights-go/internal/types"
)

// Loader assembles a WeeklyDataset from a Source.
type Loader struct {
	src Source
	log *logger.Logger
}

func NewLoader(src Source, log *logger.Logger) *Loader {
	return &Loader{src: src, log: log.Component("dataset")}
}

func (l *Loader) Weeks(ctx context.Context) ([]int, error) {
	return l.src.ListWeeks(ctx)
}

// LoadWeek reads the week's workbook when present, otherwise its CSV files.
// It returns ErrWeekNotFound when the week has no product table and
// *types.MissingDataError when a table lacks a required column.
func (l *Loader) LoadWeek(ctx context.Context, week int) (types.WeeklyDataset, error) {
	log := l.log.WithField("week", week)

	tables, err := l.readWorkbook(ctx, week)
	if errors.Is(err, ErrFileNotFound) {
		tables, err = l.readCSVs(ctx, week)
	}
	if err != nil {
		return types.WeeklyDataset{}, err
	}
	if tables[TableProducts].Empty() {
		return types.WeeklyDataset{}, fmt.Errorf("week %d: %w", week, ErrWeekNotFound)
	}

	ds, err := assemble(week, tables)
	if err != nil {
		log.WithError(err).Warn("week tables rejected")
		return types.WeeklyDataset{}, err
	}
	log.WithField("products", len(ds.Products)).
		WithField("emotions", len(ds.Emotions)).
		WithField("topics", len(ds.Topics)).
		WithField("platforms", len(ds.Platforms)).
		Info("week loaded")
	return ds, nil
}

func (l *Loader) readWorkbook(ctx context.Context, week int) (map[string]Table, error) {
	rc, err := l.src.Open(ctx, week, WorkbookName(week))
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadWorkbook(rc)
}

// readCSVs fetches the week's CSV files concurrently. Missing files give
// empty tables.
func (l *Loader) readCSVs(ctx context.Context, week int) (map[string]Table, error) {
	names := []string{TableProducts, TableEmotions, TableTopics, TablePlatforms, TableSummary}
	results := make([]Table, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range names {
		g.Go(func() error {
			t, err := l.readCSV(gctx, week, table)
			if err != nil {
				return err
			}
			results[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]Table, len(names))
	for i, table := range names {
		out[table] = results[i]
	}
	return out, nil
}

func (l *Loader) readCSV(ctx context.Context, week int, table string) (Table, error) {
	rc, err := l.src.Open(ctx, week, csvName(table, week))
	if errors.Is(err, ErrFileNotFound) {
		return NewTable(table, nil), nil
	}
	if err != nil {
		return Table{}, err
	}
	defer rc.Close()
	return ReadCSV(table, rc)
}

func assemble(week int, tables map[string]Table) (types.WeeklyDataset, error) {
	ds := types.WeeklyDataset{Week: week}
	var err error
	if ds.Products, err = ParseProducts(tables[TableProducts]); err != nil {
		return ds, err
	}
	if t := tables[TableEmotions]; !t.Empty() {
		if ds.Emotions, err = ParseEmotions(t); err != nil {
			return ds, err
		}
	}
	if t := tables[TableTopics]; !t.Empty() {
		if ds.Topics, err = ParseTopics(t); err != nil {
			return ds, err
		}
	}
	if t := tables[TablePlatforms]; !t.Empty() {
		if ds.Platforms, err = ParsePlatforms(t); err != nil {
			return ds, err
		}
	}
	ds.Overrides = ParseOverrides(tables[TableSummary])
	return ds, nil
}
