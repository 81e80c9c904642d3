// SPDX-License-Identifier: MIT

package ltgl

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// forEachSlice runs fn(t) for t in [0, n). With more than one worker the calls
// fan out over a bounded errgroup; fn must only write state owned by slice t.
// The first error (in completion order) is returned, tagged with its slice.
func forEachSlice(workers, n int, fn func(t int) error) error {
	if workers <= 1 || n <= 1 {
		for t := 0; t < n; t++ {
			if err := fn(t); err != nil {
				return fmt.Errorf("slice %d: %w", t, err)
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for t := 0; t < n; t++ {
		t := t
		g.Go(func() error {
			if err := fn(t); err != nil {
				return fmt.Errorf("slice %d: %w", t, err)
			}
			return nil
		})
	}

	return g.Wait()
}
