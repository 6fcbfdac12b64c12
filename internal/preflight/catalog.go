package preflight

import (
	"context"
	"fmt"

	dexerrors "github.com/Aman-CERP/promptdex/internal/errors"
	"github.com/Aman-CERP/promptdex/internal/scanner"
)

// Indexer is the part of *scanner.Scanner the catalog check needs.
type Indexer interface {
	Root() (string, error)
	Index(ctx context.Context) ([]scanner.Document, scanner.Stats, error)
}

// CheckCatalog scans the catalog once. A root that cannot be scanned fails;
// an empty catalog or skipped entries only warn.
func (c *Checker) CheckCatalog(ctx context.Context, idx Indexer) CheckResult {
	result := CheckResult{
		Name:     "catalog_root",
		Required: true,
	}

	root, _ := idx.Root()
	result.Details = root

	docs, stats, err := idx.Index(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = dexerrors.FormatForUser(err)
		return result
	}

	categories := make(map[string]struct{})
	for _, d := range docs {
		categories[d.Category] = struct{}{}
	}

	switch {
	case len(docs) == 0:
		result.Status = StatusWarn
		result.Message = "no prompt files found"
	case stats.FilesSkipped > 0 || stats.DirsSkipped > 0 || stats.DuplicateIDs > 0:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%d prompts in %d categories (%d files skipped, %d directories skipped, %d duplicate ids)",
			len(docs), len(categories), stats.FilesSkipped, stats.DirsSkipped, stats.DuplicateIDs)
	default:
		result.Status = StatusPass
		result.Message = fmt.Sprintf("%d prompts in %d categories", len(docs), len(categories))
	}
	return result
}
