package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/roster/internal/formatter"
	"github.com/desertthunder/roster/internal/models"
	"github.com/desertthunder/roster/internal/shared"
)

// FormatJSON dumps the raw records of a collection, as stored.
const FormatJSON = "json"

// ManifestName is the file written next to the exports.
const ManifestName = "export_manifest.json"

// Collections lists every collection in export order.
var Collections = []string{models.StudentsCollection, models.CoursesCollection, models.InstructorsCollection}

// BulkExportOpts contains configuration for bulk exports.
type BulkExportOpts struct {
	Formats    []string // json, csv, md, txt, xlsx (default: csv)
	OutputDir  string   // Base output directory (default: roster_export_{epoch})
	NumWorkers int      // Concurrent workers (default: 3, max: 10)
}

// CollectionExportResult is the outcome of one (collection, format) job.
type CollectionExportResult struct {
	Collection   string `json:"collection"`
	Format       string `json:"format"`
	Records      int    `json:"records"`
	File         string `json:"file,omitempty"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
	Error        error  `json:"-"`

	order int
}

// BulkExportResult summarizes a bulk export and is written as the manifest.
type BulkExportResult struct {
	TotalJobs         int                      `json:"total_jobs"`
	SuccessfulExports int                      `json:"successful_exports"`
	FailedExports     int                      `json:"failed_exports"`
	OutputDirectory   string                   `json:"output_directory"`
	ExportedAt        time.Time                `json:"exported_at"`
	Results           []CollectionExportResult `json:"results"`
	ManifestPath      string                   `json:"-"`
}

type exportJob struct {
	order      int
	collection string
	format     string
}

// BulkExport writes every collection in each requested format using a worker pool.
//
// Unknown formats are rejected before anything is written. Jobs that fail are
// recorded in the result; the returned error covers setup, cancellation and the manifest.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formats, err := normalizeFormats(opts.Formats)
	if err != nil {
		return nil, err
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("roster_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	snap := e.snapshot()
	e.sendProgress(prog, snapshotUpdate(len(snap.students), len(snap.courses), len(snap.instructors)))

	var plan []exportJob
	for _, collection := range Collections {
		for _, format := range formats {
			if format == formatter.FormatXLSX && collection != models.StudentsCollection {
				continue
			}
			plan = append(plan, exportJob{order: len(plan), collection: collection, format: format})
		}
	}

	result := &BulkExportResult{
		TotalJobs:       len(plan),
		OutputDirectory: opts.OutputDir,
		ExportedAt:      time.Now().UTC(),
		Results:         make([]CollectionExportResult, 0, len(plan)),
	}

	jobs := make(chan exportJob, len(plan))
	results := make(chan CollectionExportResult, len(plan))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, snap, opts.OutputDir, jobs, results)
	}

	go func() {
		defer close(jobs)
		for _, job := range plan {
			if ctx.Err() != nil {
				return
			}
			jobs <- job
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(plan), res))
		} else {
			result.FailedExports++
			e.logger.Warn("export failed", "collection", res.Collection, "format", res.Format, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(plan), res))
		}
	}

	sort.Slice(result.Results, func(i, j int) bool { return result.Results[i].order < result.Results[j].order })

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted after %d of %d jobs: %w", completed, len(plan), err)
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))

	e.logger.Info("bulk export complete", "dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that writes files for jobs until the channel closes.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	snap snapshot,
	dir string,
	jobs <-chan exportJob,
	results chan<- CollectionExportResult,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- exportOne(snap, dir, job)
	}
}

func exportOne(snap snapshot, dir string, job exportJob) CollectionExportResult {
	res := CollectionExportResult{Collection: job.collection, Format: job.format, order: job.order}
	path := filepath.Join(dir, job.collection+"."+job.format)

	var err error
	switch job.format {
	case FormatJSON:
		res.Records, err = writeRecords(snap, job.collection, path)
	case formatter.FormatXLSX:
		res.Records = len(snap.students)
		path, err = formatter.WriteStudentsXLSX(snap.students, snap.courses, path)
	default:
		t := snap.table(job.collection)
		res.Records = len(t.Rows)
		path, err = formatter.WriteExport(t, job.format, path)
	}

	if err != nil {
		res.Error = fmt.Errorf("%s export failed: %w", job.format, err)
		res.ErrorMessage = res.Error.Error()
		return res
	}
	res.File = path
	res.Success = true
	return res
}

func writeRecords(snap snapshot, collection, path string) (int, error) {
	var records any
	var n int
	switch collection {
	case models.CoursesCollection:
		records, n = snap.courses, len(snap.courses)
	case models.InstructorsCollection:
		records, n = snap.instructors, len(snap.instructors)
	default:
		records, n = snap.students, len(snap.students)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal %s: %w", collection, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return n, nil
}

func writeManifest(result *BulkExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// normalizeFormats lowercases, dedupes and validates formats, defaulting to csv.
func normalizeFormats(formats []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		switch f {
		case FormatJSON, formatter.FormatCSV, formatter.FormatMarkdown, formatter.FormatText, formatter.FormatXLSX:
		default:
			return nil, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, f)
		}
		seen[f] = true
		out = append(out, f)
	}
	if len(out) == 0 {
		out = []string{formatter.FormatCSV}
	}
	return out, nil
}
