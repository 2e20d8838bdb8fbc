// Package loader reads projection data files and keeper rosters from disk.
//
// Projection files hold one athlete per line. Columns are separated by
// whitespace, the name may itself contain spaces, and the trailing columns
// are stats: the first of them is the team and the last is the projected
// season points.
//
//	Aaron Rodgers GB 4381 39 8 53 259 2 0 1 0 385.2
//	Le'Veon Bell Upside PIT 1361 8 83 854 3 0 2 251.5
package loader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/pricing"
	"github.com/okian/draftkit/pkg/logger"
	"github.com/okian/draftkit/pkg/metrics"
)

// Trailing name tokens that tag a projection rather than belong to the name.
var annotations = map[string]bool{"Upside": true, "Risk": true} //nolint:gochecknoglobals // fixed token set

// Loader turns projection files into catalog athletes.
type Loader struct {
	categories model.Categories
	pricer     pricing.Pricer
	log        logger.Logger
}

// New creates a loader. Without WithCategories every category is unknown.
func New(opts ...Option) *Loader {
	l := &Loader{
		categories: model.Categories{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.pricer == nil {
		l.pricer = pricing.NewWeightedPricer(pricing.WithCategories(l.categories))
	}
	return l
}

// ParseRecord splits one line into name, team and points. fields is the
// number of trailing stat columns.
func ParseRecord(line string, fields int) (model.Record, error) {
	tokens := strings.Fields(line)
	if fields < 2 || len(tokens) <= fields {
		return model.Record{}, fmt.Errorf("%w: want a name and %d columns, got %d tokens", ErrMalformedRecord, fields, len(tokens))
	}

	split := len(tokens) - fields
	stats := tokens[split:]

	name := tokens[:split]
	if annotations[name[len(name)-1]] {
		kept := make([]string, 0, split)
		for _, tok := range name {
			if !annotations[tok] {
				kept = append(kept, tok)
			}
		}
		name = kept
	}
	if len(name) == 0 {
		return model.Record{}, fmt.Errorf("%w: empty name", ErrMalformedRecord)
	}

	points, err := strconv.ParseFloat(stats[len(stats)-1], 64)
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: points %q: %v", ErrMalformedRecord, stats[len(stats)-1], err)
	}

	return model.Record{
		Name:   strings.Join(name, " "),
		Team:   stats[0],
		Points: points,
	}, nil
}

// LoadCategory reads every record of one category from r. Blank lines and
// lines starting with # are skipped.
func (l *Loader) LoadCategory(ctx context.Context, r io.Reader, category model.Category) ([]model.Record, error) {
	cfg, err := l.categories.Lookup(category)
	if err != nil {
		return nil, err
	}

	var out []model.Record
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, err := ParseRecord(line, cfg.Fields)
		if err != nil {
			metrics.RecordRecordSkipped(string(category), "malformed")
			return nil, fmt.Errorf("%s line %d: %w", category, lineNo, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s records: %w", category, err)
	}
	return out, nil
}

// Build prices records into athletes, each with a fresh identity. Records that price
// to a non-positive cost cannot enter the catalog and are skipped.
func (l *Loader) Build(ctx context.Context, records []model.Record, category model.Category) ([]model.Athlete, error) {
	out := make([]model.Athlete, 0, len(records))
	for _, rec := range records {
		cost, err := l.pricer.Cost(category, rec.Points)
		if err != nil {
			return nil, err
		}
		a, err := model.NewAthlete(rec.Name, rec.Team, category, cost, rec.Points)
		if err != nil {
			l.log.Warn(ctx, "skipping athlete",
				logger.String("athlete", rec.Name),
				logger.String("category", string(category)),
				logger.Float64("points", rec.Points),
				logger.Error(err),
			)
			metrics.RecordRecordSkipped(string(category), "non_positive_cost")
			continue
		}
		out = append(out, a)
	}
	metrics.RecordRecordsLoaded(string(category), len(out))
	return out, nil
}

// LoadFile reads and builds the athletes of one category file.
func (l *Loader) LoadFile(ctx context.Context, path string, category model.Category) ([]model.Athlete, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s data: %w", category, err)
	}
	defer func() { _ = f.Close() }()

	records, err := l.LoadCategory(ctx, f, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	athletes, err := l.Build(ctx, records, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Info(ctx, "category loaded",
		logger.String("category", string(category)),
		logger.String("path", path),
		logger.Int("athletes", len(athletes)),
	)
	return athletes, nil
}

// LoadFiles loads every category file, in category name order.
func (l *Loader) LoadFiles(ctx context.Context, files map[model.Category]string) ([]model.Athlete, error) {
	cats := make([]model.Category, 0, len(files))
	for c := range files {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var all []model.Athlete
	for _, c := range cats {
		as, err := l.LoadFile(ctx, files[c], c)
		if err != nil {
			return nil, err
		}
		all = append(all, as...)
	}
	return all, nil
}
