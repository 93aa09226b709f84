package orchestrator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/daydemir/herbie/internal/hosting"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// maxUploadSize is the largest file sent through the contents API
const maxUploadSize = 1 << 20

// alwaysIgnored applies even when the project has no .gitignore
var alwaysIgnored = []string{
	".git",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
	".dart_tool",
	".DS_Store",
}

// uploadFiles sends every non-ignored file through the hosting API, one
// tracked record per file. It returns counts of uploaded and failed files.
func (o *Orchestrator) uploadFiles(ctx context.Context, ec *ExecutionContext, repo *hosting.Repository) (uploaded, failed int) {
	files, skipped, err := collectFiles(ec.LocalPath)
	if err != nil {
		ec.note("Could not list project files for upload: %v", err)
		return 0, 0
	}
	for _, s := range skipped {
		ec.note("Skipped %s during fallback upload (larger than %d bytes).", s, maxUploadSize)
	}

	for _, rel := range files {
		content, readErr := os.ReadFile(filepath.Join(ec.LocalPath, filepath.FromSlash(rel)))
		rec := o.track(ctx, ec, "upload "+rel, func(ctx context.Context) error {
			if readErr != nil {
				return readErr
			}
			return o.host.UploadFile(ctx, repo, rel, content)
		})
		if rec.Success {
			uploaded++
		} else {
			failed++
			o.logger.Warn("fallback upload failed", zap.String("path", rel), zap.String("error", rec.Stderr))
		}
	}
	return uploaded, failed
}

// collectFiles lists files under root as slash-separated relative paths,
// honouring .gitignore files and the built-in ignore list. Files over
// maxUploadSize are returned separately.
func collectFiles(root string) (files, tooLarge []string, err error) {
	patterns := make([]gitignore.Pattern, 0, len(alwaysIgnored))
	for _, p := range alwaysIgnored {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	fromRepo, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}
	matcher := gitignore.NewMatcher(append(patterns, fromRepo...))

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if matcher.Match(parts, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxUploadSize {
			tooLarge = append(tooLarge, filepath.ToSlash(rel))
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.Strings(files)
	return files, tooLarge, nil
}
