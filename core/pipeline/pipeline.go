package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"slotpatch/core/addrmap"
	"slotpatch/core/fileio"
	"slotpatch/core/patch"
	"slotpatch/core/reconcile"
	"slotpatch/core/scan"
	"slotpatch/core/table"

	"go.uber.org/zap"
)

// maxSamples bounds the unresolved slots listed in the run report.
const maxSamples = 5

// Options configures a run.
type Options struct {
	Files Files
	Scan  scan.Config
	// DryRun runs every stage but writes nothing.
	DryRun bool
	// Extra holds translations merged under the table file's entries, e.g. a pulled memory.
	Extra *table.Table
}

// Result reports what a run resolved and wrote.
type Result struct {
	Summary    reconcile.Summary
	Stats      table.Stats
	Patched    int
	OutputSize int
	Resolved   []reconcile.ResolvedString
	// Written is false for dry runs.
	Written bool
}

// Run loads the address ranges, scans the original and previously patched binaries,
// reconciles them with the translation table and writes the regenerated table and the
// patched binary. Nothing is written unless every stage succeeds.
func Run(ctx context.Context, opts Options, l *zap.Logger) (*Result, error) {
	if l == nil {
		l = zap.NewNop()
	}
	files := opts.Files

	ranges, err := addrmap.Load(files.Addresses)
	if err != nil {
		return nil, fmt.Errorf("load address ranges: %w", err)
	}
	l.Debug("Loaded address ranges", zap.String("path", files.Addresses), zap.Int("count", len(ranges)))

	scanner := scan.New(opts.Scan)

	original, err := os.ReadFile(files.Original)
	if err != nil {
		return nil, fmt.Errorf("read original binary: %w", err)
	}
	originalRecords, err := scanner.Scan(original, ranges)
	if err != nil {
		return nil, fmt.Errorf("scan original binary: %w", err)
	}

	// The patched binary is walked leniently: a drifted slot throws its scan out of step,
	// and the slots read up to that point locate the drift by index.
	patchedRecords, found, err := scan.New(scan.Config{Strict: false}).ScanFile(files.Patched, ranges)
	if err != nil {
		if divergence := reconcile.Correspond(originalRecords, patchedRecords); divergence != nil {
			return nil, fmt.Errorf("reconcile: %w", divergence)
		}
		return nil, fmt.Errorf("scan patched binary: %w", err)
	}
	if !found {
		l.Info("Patched binary not found, starting without it", zap.String("path", files.Patched))
	}
	l.Debug("Scanned binaries",
		zap.Int("original_records", len(originalRecords)),
		zap.Int("patched_records", len(patchedRecords)),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	translations, found, err := table.Load(files.Table)
	if err != nil {
		return nil, fmt.Errorf("load translation table: %w", err)
	}
	if !found {
		l.Info("Translation table not found, starting with an empty table", zap.String("path", files.Table))
		translations = table.New()
	}
	if opts.Extra != nil {
		added := translations.Merge(opts.Extra)
		l.Info("Merged extra translations", zap.Int("added", added), zap.Int("available", opts.Extra.Len()))
	}

	resolved, err := reconcile.Reconcile(originalRecords, patchedRecords, translations)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rendered bytes.Buffer
	stats, err := table.Write(&rendered, resolved)
	if err != nil {
		return nil, fmt.Errorf("render translation table: %w", err)
	}
	output, applied := patch.Apply(original, resolved)

	res := &Result{
		Summary:    reconcile.Summarize(resolved),
		Stats:      stats,
		Patched:    applied,
		OutputSize: len(output),
		Resolved:   resolved,
	}

	if !opts.DryRun {
		err := fileio.WriteFilesAtomic(0o644,
			fileio.File{Path: files.Table, Data: rendered.Bytes()},
			fileio.File{Path: files.OutputPath(), Data: output},
		)
		if err != nil {
			return nil, fmt.Errorf("write translation table and patched binary: %w", err)
		}
		res.Written = true
	}

	report(l, res)
	return res, nil
}

func report(l *zap.Logger, res *Result) {
	s := res.Summary

	l.Info("Translation report",
		zap.Int("slots", s.Slots),
		zap.Int("translated", s.Translated),
		zap.Int("unresolved", s.Unresolved),
		zap.Int("from_table", s.FromTable),
		zap.Int("from_patched", s.FromPatched),
		zap.Int("unique_strings", res.Stats.Unique),
		zap.String("ratio", fmt.Sprintf("%.2f%%", res.Stats.Ratio()*100)),
	)

	samples := reconcile.Unresolved(res.Resolved, maxSamples)
	for _, r := range samples {
		l.Info("Unresolved slot",
			zap.Int("offset", r.Offset),
			zap.Int("length", r.Length),
			zap.String("original", table.Escape(r.Original)),
		)
	}
	if s.Unresolved > len(samples) {
		l.Info("Additional unresolved slots not shown", zap.Int("count", s.Unresolved-len(samples)))
	}

	if res.Written {
		l.Info("Patched binary written", zap.Int("patched_slots", res.Patched), zap.Int("size", res.OutputSize))
	} else {
		l.Info("Dry-run mode: no files were written", zap.Int("patched_slots", res.Patched))
	}
}
