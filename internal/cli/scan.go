package cli

import (
	"context"

	"github.com/joe/env-finder/internal/finder"
)

// ScanRoots returns a ScanFunc that scans each root in turn with f.
// Roots left after a cancellation are not scanned.
func ScanRoots(f *finder.Finder, roots []string, matcher finder.Matcher) ScanFunc {
	return func(ctx context.Context) []*finder.Result {
		results := make([]*finder.Result, 0, len(roots))

		for _, root := range roots {
			results = append(results, f.Find(ctx, root, matcher))

			if ctx.Err() != nil {
				break
			}
		}

		return results
	}
}
