// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"context"
	"time"

	"code.hybscloud.com/sbq/sema"
)

// waitOp performs one wait discipline against a semaphore. The queue cores
// have exactly one push path and one pop path each; the waiting discipline
// (block, try, timed, context-aware) is an argument, not a branch. Every
// external entry point of a facade reduces to one of these against the
// appropriate semaphore of the pair.
type waitOp func(*sema.Semaphore) error

func waitBlocking(s *sema.Semaphore) error {
	return s.Wait()
}

func waitTry(s *sema.Semaphore) error {
	return s.TryWait()
}

func waitCtx(ctx context.Context) waitOp {
	return func(s *sema.Semaphore) error {
		return s.WaitContext(ctx)
	}
}

func waitFor(d time.Duration) waitOp {
	return func(s *sema.Semaphore) error {
		return s.WaitFor(d)
	}
}

func waitUntil(t time.Time) waitOp {
	return func(s *sema.Semaphore) error {
		return s.WaitUntil(t)
	}
}
