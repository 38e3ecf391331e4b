// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sbq

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/sbq/sema"
)

// ErrWouldBlock indicates a try variant could not proceed immediately.
//
// For TryPush: the queue is full (backpressure)
// For TryPop: the queue is empty (no data available)
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later, switch to a blocking variant, or drop the work.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrTimedOut indicates a *For or *Until variant reached its deadline before
// the queue had room (push) or data (pop). Like ErrWouldBlock it is a
// control flow signal: the queue is untouched and the operation may be
// retried.
//
// This is an alias for [sema.ErrTimedOut].
var ErrTimedOut = sema.ErrTimedOut

// ErrMessageSize indicates a raw queue operation was called with a buffer
// whose length differs from the queue's element size. The check happens
// before any semaphore is touched, so the queue state is unchanged.
var ErrMessageSize = errors.New("sbq: message size mismatch")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsTimedOut reports whether err indicates a timed wait expired.
func IsTimedOut(err error) bool {
	return errors.Is(err, ErrTimedOut)
}

// IsSemantic reports whether err is a control flow signal (not a failure):
// would-block, timed-out, or an iox semantic error.
func IsSemantic(err error) bool {
	return errors.Is(err, ErrTimedOut) || iox.IsSemantic(err)
}
