package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"media-gallery/internal/controlfile"
	"media-gallery/internal/database"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
	"media-gallery/internal/workers"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/sync/errgroup"
)

// maxWorkers caps the write fan-out.
const maxWorkers = 16

// History records manifest runs. *database.Database implements it.
type History interface {
	RecordRun(ctx context.Context, run *database.ManifestRun) (int64, error)
	SetLastManifestRun(ctx context.Context, t time.Time) error
}

// Options configures a Generator.
type Options struct {
	Marker string
	// SnapshotPath is where the snapshot is written; "" skips it.
	SnapshotPath string
	// Workers bounds concurrent writes; 0 sizes it from the CPU count.
	Workers int
	// History, when set, receives one record per run.
	History History
}

// Report summarizes one run.
type Report struct {
	StartedAt   time.Time
	Duration    time.Duration
	Directories int
	Created     int
	Updated     int
	Unchanged   int
	Failed      int
	// Snapshot is the outcome of the snapshot write; meaningful only when
	// a snapshot path is configured.
	Snapshot filesystem.WriteOutcome
	Tree     *gallery.Tree
}

// Written is the number of listing files created or updated.
func (r *Report) Written() int {
	return r.Created + r.Updated
}

// Generator precomputes the tree and maintains the fallback listing files.
type Generator struct {
	src  filesystem.Source
	fs   billy.Filesystem
	opts Options
}

// NewGenerator creates a generator that reads through src and writes
// listing files into fs, which must be rooted at the same collection.
func NewGenerator(src filesystem.Source, fs billy.Filesystem, opts Options) *Generator {
	if opts.Marker == "" {
		opts.Marker = gallery.DefaultMarker
	}
	if opts.Workers <= 0 {
		opts.Workers = workers.ForIO(maxWorkers)
	}
	return &Generator{src: src, fs: fs, opts: opts}
}

type job struct {
	name string
	kind string // metric label: "folders" or "images"
	data []byte
}

// Run builds the full tree, rewrites every listing file whose content
// changed and writes the snapshot. Files with identical content are left
// untouched, so a second run over an unchanged collection writes nothing.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	report := &Report{StartedAt: time.Now()}

	var jobs []job
	tree := gallery.Build(g.src, gallery.Options{
		Marker: g.opts.Marker,
		Visit: func(l gallery.Listing) {
			report.Directories++
			jobs = append(jobs, plan(l)...)
		},
	})
	report.Tree = tree
	logging.Info("Manifest: %d directories scanned, %d listing files to check", report.Directories, len(jobs))

	err := g.writeListings(ctx, jobs, report)
	if err == nil && g.opts.SnapshotPath != "" {
		report.Snapshot, err = g.writeSnapshot(tree)
	}

	report.Duration = time.Since(report.StartedAt)
	g.finish(ctx, report, err)

	if err != nil {
		return report, err
	}
	logging.Info("Manifest complete in %v: %d created, %d updated, %d unchanged",
		report.Duration, report.Created, report.Updated, report.Unchanged)
	return report, nil
}

// plan returns the listing files for one directory. Folder listings are
// only written where subdirectories exist, media listings only where media
// exist and never at the root.
func plan(l gallery.Listing) []job {
	var jobs []job
	if len(l.Folders) > 0 {
		jobs = append(jobs, job{
			name: path.Join(l.Path, controlfile.Folders),
			kind: "folders",
			data: lines(l.Folders),
		})
	}
	if len(l.Media) > 0 && l.Path != "" {
		jobs = append(jobs, job{
			name: path.Join(l.Path, controlfile.Images),
			kind: "images",
			data: lines(l.Media),
		})
	}
	return jobs
}

func lines(names []string) []byte {
	return []byte(strings.Join(names, "\n") + "\n")
}

func (g *Generator) writeListings(ctx context.Context, jobs []job, report *Report) error {
	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)

	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcome, err := filesystem.WriteIfChanged(g.fs, j.name, j.data, 0o644)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed++
				metrics.ManifestWritesTotal.WithLabelValues(j.kind, "error").Inc()
				return fmt.Errorf("failed to write %s: %w", j.name, err)
			}
			count(report, outcome)
			metrics.ManifestWritesTotal.WithLabelValues(j.kind, outcome.String()).Inc()
			if outcome != filesystem.Unchanged {
				logging.Debug("Manifest %s %s", outcome, j.name)
			}
			return nil
		})
	}
	return eg.Wait()
}

func count(report *Report, outcome filesystem.WriteOutcome) {
	switch outcome {
	case filesystem.Created:
		report.Created++
	case filesystem.Updated:
		report.Updated++
	default:
		report.Unchanged++
	}
}

// writeSnapshot writes the snapshot unless the existing one describes the
// same tree, in which case its original timestamp is kept.
func (g *Generator) writeSnapshot(tree *gallery.Tree) (filesystem.WriteOutcome, error) {
	fs, name, err := filesystem.Locate(g.opts.SnapshotPath)
	if err != nil {
		return filesystem.Unchanged, err
	}

	fresh := gallery.NewSnapshot(tree)
	if existing, err := util.ReadFile(fs, name); err == nil && sameTree(existing, fresh) {
		metrics.ManifestWritesTotal.WithLabelValues("snapshot", filesystem.Unchanged.String()).Inc()
		return filesystem.Unchanged, nil
	}

	data, err := gallery.Encode(tree)
	if err != nil {
		return filesystem.Unchanged, err
	}
	outcome, err := filesystem.WriteIfChanged(fs, name, data, 0o644)
	if err != nil {
		metrics.ManifestWritesTotal.WithLabelValues("snapshot", "error").Inc()
		return filesystem.Unchanged, fmt.Errorf("failed to write snapshot: %w", err)
	}
	metrics.ManifestWritesTotal.WithLabelValues("snapshot", outcome.String()).Inc()
	logging.Info("Snapshot %s %s", outcome, g.opts.SnapshotPath)
	return outcome, nil
}

// sameTree reports whether data holds a snapshot of the same tree as fresh,
// ignoring when it was generated.
func sameTree(data []byte, fresh *gallery.Snapshot) bool {
	var old gallery.Snapshot
	if err := json.Unmarshal(data, &old); err != nil || old.Root == nil {
		return false
	}
	if old.Version != fresh.Version || old.Marker != fresh.Marker {
		return false
	}
	a, errA := json.Marshal(old.Root)
	b, errB := json.Marshal(fresh.Root)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// finish records metrics and, when configured, the run history.
func (g *Generator) finish(ctx context.Context, report *Report, runErr error) {
	status := "success"
	if runErr != nil {
		status = "error"
	}
	metrics.ManifestRunsTotal.WithLabelValues(status).Inc()
	metrics.ManifestLastRunTimestamp.Set(float64(report.StartedAt.Unix()))
	metrics.ManifestLastRunDuration.Set(report.Duration.Seconds())
	metrics.Collect(report.Tree)

	if g.opts.History == nil {
		return
	}

	run := &database.ManifestRun{
		StartedAt:   report.StartedAt,
		Duration:    report.Duration,
		Directories: report.Directories,
		Written:     report.Written(),
		Unchanged:   report.Unchanged,
		Failed:      report.Failed,
	}
	if g.opts.SnapshotPath != "" && runErr == nil {
		run.Snapshot = report.Snapshot.String()
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}

	// History is best effort; the files on disk are already written.
	if _, err := g.opts.History.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		logging.Warn("Failed to record manifest run: %v", err)
	}
	if runErr == nil {
		if err := g.opts.History.SetLastManifestRun(context.WithoutCancel(ctx), report.StartedAt); err != nil {
			logging.Warn("Failed to record last manifest run: %v", err)
		}
	}
}
