package sqlextract

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// FromFiles extracts tables from every SQL file matching pattern. Files
// parse concurrently; results merge in sorted path order, and when the same
// table id appears in multiple files the later path wins. Unreadable files
// log a warning and are skipped rather than failing the whole run.
func FromFiles(ctx context.Context, pattern string, logger *slog.Logger) ([]Table, error) {
	paths, err := expandGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("resolving pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match pattern %q", pattern)
	}
	sort.Strings(paths)

	perFile := make([][]Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(p)
			if err != nil {
				logger.Warn("skipping unreadable file", "path", p, "error", err)
				return nil
			}
			tables := ExtractStatements(string(content))
			if len(tables) == 0 {
				logger.Warn("no CREATE TABLE or CREATE VIEW statements found", "path", p)
			}
			perFile[i] = tables
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	var merged []Table
	for _, tables := range perFile {
		for _, t := range tables {
			if at, ok := seen[t.ID]; ok {
				merged[at] = t
				continue
			}
			seen[t.ID] = len(merged)
			merged = append(merged, t)
		}
	}
	return merged, nil
}

// expandGlob resolves a glob pattern to file paths. Patterns without "**"
// go straight to filepath.Glob; with "**" the prefix is walked recursively
// and the remainder matches the tail of each file path.
func expandGlob(pattern string) ([]string, error) {
	idx := strings.Index(pattern, "**")
	if idx < 0 {
		return filepath.Glob(pattern)
	}

	root := strings.TrimSuffix(pattern[:idx], "/")
	if root == "" {
		root = "."
	}
	suffix := strings.TrimPrefix(pattern[idx+2:], "/")
	if suffix == "" {
		suffix = "*"
	}
	suffixSegs := len(strings.Split(suffix, "/"))

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		segs := strings.Split(filepath.ToSlash(rel), "/")
		if len(segs) < suffixSegs {
			return nil
		}
		tail := strings.Join(segs[len(segs)-suffixSegs:], "/")
		ok, err := path.Match(suffix, tail)
		if err != nil {
			return err
		}
		if ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
