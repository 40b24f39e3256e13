// Package dispatch walks the year-partitioned raw files and routes
// each year through the merge or a pass-through copy.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"metafix/internal/csvio"
	"metafix/internal/model"
	"metafix/internal/normalize"
	"metafix/internal/reconcile"
)

// Dispatcher owns one run of the merge pipeline. Inputs are never
// mutated; each year's datasets live only for that year's merge.
type Dispatcher struct {
	cfg  *model.Config
	norm *normalize.Normalizer
}

// New creates a Dispatcher for the given configuration.
func New(cfg *model.Config) *Dispatcher {
	return &Dispatcher{cfg: cfg, norm: normalize.New()}
}

// Years lists the year partitions found under the raw directory,
// sorted ascending. Files are matched by the <prefix>_<year>.csv
// convention.
func (d *Dispatcher) Years() ([]int, error) {
	entries, err := os.ReadDir(d.cfg.RawDir)
	if err != nil {
		return nil, fmt.Errorf("read raw dir: %w", err)
	}
	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if y, ok := yearFromName(e.Name(), d.cfg.Prefix); ok {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years, nil
}

func yearFromName(name, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(name, prefix+"_")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".csv")
	if !ok {
		return 0, false
	}
	y, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return y, true
}

// Run processes every discovered year and returns one summary per
// year, ascending. A failing year aborts the run with its error; years
// already written stay written.
func (d *Dispatcher) Run(ctx context.Context) ([]model.YearSummary, error) {
	years, err := d.Years()
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(d.cfg.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}

	fixes, err := d.loadFixes()
	if err != nil {
		return nil, err
	}

	// Partition fix rows by release year once; each year's merge sees
	// only its own subset. With no fixes at all the map stays empty and
	// every year falls through to the copy path.
	byYear := make(map[int]model.Dataset)
	for _, r := range fixes {
		if !r.ReleaseYear.Valid {
			continue // no year partition for this fix row to land in
		}
		byYear[r.ReleaseYear.Value] = append(byYear[r.ReleaseYear.Value], r)
	}

	if d.cfg.Jobs > 1 {
		return d.runParallel(ctx, years, byYear, d.cfg.Jobs)
	}

	var summaries []model.YearSummary
	for _, y := range years {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		s, err := d.processYear(y, byYear[y])
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// loadFixes reads the fixes table. A missing fixes file is not an
// error: it switches every year to pass-through.
func (d *Dispatcher) loadFixes() (model.Dataset, error) {
	if _, err := os.Stat(d.cfg.FixesFile); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat fixes file: %w", err)
	}
	return csvio.Read(d.cfg.FixesFile)
}

func (d *Dispatcher) processYear(year int, fixes model.Dataset) (model.YearSummary, error) {
	name := fmt.Sprintf("%s_%d.csv", d.cfg.Prefix, year)
	in := filepath.Join(d.cfg.RawDir, name)
	out := filepath.Join(d.cfg.OutDir, name)

	if len(fixes) == 0 {
		if err := copyFile(in, out); err != nil {
			return model.YearSummary{}, fmt.Errorf("[%d] %w", year, err)
		}
		return model.YearSummary{Year: year, Mode: model.ModeCopied}, nil
	}

	base, err := csvio.Read(in)
	if err != nil {
		return model.YearSummary{}, fmt.Errorf("[%d] %w", year, err)
	}
	merged, stats := reconcile.Reconcile(d.norm, base, fixes, year)
	if err := csvio.Write(out, merged); err != nil {
		return model.YearSummary{}, fmt.Errorf("[%d] %w", year, err)
	}
	return model.YearSummary{
		Year:       year,
		Mode:       model.ModeMerged,
		Added:      stats.Added,
		Pruned:     stats.Pruned,
		Backfilled: stats.Backfilled,
	}, nil
}

// copyFile copies bytes verbatim so a pass-through year comes out
// byte-identical to its input, not a parse/rewrite round trip.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return nil
}

// runParallel fans year jobs out over a bounded worker set. Years are
// self-contained, so ordering between them never affects the result;
// summaries come back sorted by year. The first error wins.
func (d *Dispatcher) runParallel(ctx context.Context, years []int, byYear map[int]model.Dataset, workers int) ([]model.YearSummary, error) {
	type result struct {
		summary model.YearSummary
		err     error
	}

	jobs := make(chan int)
	results := make(chan result, len(years))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range jobs {
				if err := ctx.Err(); err != nil {
					results <- result{err: err}
					continue
				}
				s, err := d.processYear(y, byYear[y])
				results <- result{summary: s, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, y := range years {
			select {
			case jobs <- y:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var summaries []model.YearSummary
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		summaries = append(summaries, r.summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Year < summaries[j].Year })
	return summaries, firstErr
}
