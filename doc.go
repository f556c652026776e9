// Package tpool provides a priority-aware worker pool with a pluggable
// task queue and a pluggable exception policy, built on explicit
// mutex/condition-variable primitives.
//
// Design goals
//
// The package is designed around operational control rather than raw
// throughput:
//
//   - Workers can be added and removed while the pool is running
//   - The whole fleet can be paused and resumed
//   - The backlog can be discarded without touching in-flight tasks
//   - A client can block until the backlog drains (Join)
//   - Shutdown is provable: the pool waits for its own counters,
//     not for thread handles it does not keep
//
// Architecture overview
//
// The pool is composed of three loosely coupled layers:
//
//   1. Ordering (Queue)
//      A small five-operation contract decides which pending task a
//      worker picks next. FIFOQueue gives submission order,
//      PriorityQueue gives highest-priority-first. Implementations are
//      called only under the pool's queue mutex and need not be
//      thread-safe.
//
//   2. Execution (Pool / workers)
//      Each worker runs one routine between spawn and exit: wait for
//      work or an exit order, move one task out, run it with the queue
//      mutex released, loop. Counters track liveness and activity so
//      structural operations can wait on precise predicates.
//
//   3. Failure delivery (ExceptionPolicy)
//      A panic inside a user task is swallowed and the worker keeps
//      going. A failure escaping the worker's own bookkeeping is
//      captured and handed once to the pool's policy: Rethrow
//      re-raises it, TryLog writes it to a shared stream and carries on.
//
// Synchronization model
//
// Two mutexes with a strict order: the outer operations mutex
// serializes the multi-step structural operations (AddThread,
// RemoveThread, Clear) so their predicate sequences never interleave;
// the inner queue mutex guards all shared data and keeps the Enqueue
// fast path short. Two condition variables keep wake-ups targeted: one
// signals work availability to workers, the other signals counter
// progress to blocked clients. The primitives live in the syncx
// subpackage; their waits are predicate-based and safe against
// spurious wake-ups.
//
// Reentrancy
//
// A task running on a worker may call Enqueue, Pause, Resume, and
// DiscardQueue on its own pool. It must not call AddThread,
// RemoveThread, Clear, or Join there: those wait on counters that
// include the calling worker and would deadlock.
//
// What tpool is not
//
// Tasks run to completion; there is no cancellation of a running task,
// no futures or results, no persistence, and no distributed dispatch.
// Ordering between tasks is exactly what the chosen queue provides.
package tpool
