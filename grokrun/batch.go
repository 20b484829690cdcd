package grokrun

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/reusee/grok/grokconfigs"
	"github.com/reusee/grok/logs"
	"github.com/reusee/grok/syncs"
)

// ExecuteFiles runs each program on its own machine, at most Jobs at a time.
// Failures are joined, each prefixed with its path.
type ExecuteFiles func(ctx context.Context, paths []string) error

func (Module) ExecuteFiles(
	logger logs.Logger,
	jobs grokconfigs.Jobs,
	load LoadProgram,
	newMachine NewMachine,
	execute Execute,
) ExecuteFiles {
	return func(ctx context.Context, paths []string) error {
		sem := syncs.NewSemaphore(int(jobs))
		errs := make([]error, len(paths))
		wg := new(sync.WaitGroup)

		for i, path := range paths {
			if err := sem.Acquire(ctx); err != nil {
				errs[i] = err
				break
			}
			wg.Go(func() {
				defer sem.Release()
				program, err := load(path)
				if err == nil {
					_, err = execute(ctx, newMachine(), program)
				}
				if err != nil {
					errs[i] = fmt.Errorf("%s: %w", path, err)
				}
			})
		}
		wg.Wait()

		err := errors.Join(errs...)
		logger.InfoContext(ctx, "batch done",
			"programs", len(paths),
			"failed", err != nil,
		)
		return err
	}
}
