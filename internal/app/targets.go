package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.spur.run/spur/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveTargets validates the watch paths and classifies each as file or
// directory. A path that does not exist aborts the invocation before any
// watch is registered. Paths are normalized relative to the working
// directory so they compare uniformly with event paths.
func resolveTargets(paths []string) ([]domain.WatchTarget, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	targets := make([]domain.WatchTarget, 0, len(paths))
	for _, path := range paths {
		normalized := normalizeTarget(cwd, path)

		info, err := os.Stat(normalized)
		if errors.Is(err, os.ErrNotExist) {
			return nil, zerr.With(domain.ErrTargetNotFound, "path", path)
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTargetStatFailed.Error()), "path", path)
		}

		targets = append(targets, domain.WatchTarget{Path: normalized, IsDir: info.IsDir()})
	}
	return targets, nil
}

// normalizeTarget rewrites an absolute path under the working directory
// to its relative form; everything else is only cleaned.
func normalizeTarget(cwd, path string) string {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(cwd, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, "../") {
			return rel
		}
	}
	return filepath.Clean(path)
}
