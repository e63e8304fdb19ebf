// Package monitor implements the recurring price-check sweep.
//
// The monitor:
//   - Waits for the chat gateway readiness signal before its first sweep
//   - Snapshots the item registry once per sweep and checks items in order
//   - Fetches listings per item, evaluates them, and emits discount alerts
//   - Isolates per-item failures; only an item-source failure skips a sweep
//   - Restarts its interval timer on demand so registry mutations take
//     effect immediately
//
// Items are checked sequentially, not fanned out, to stay inside the
// upstream per-second rate limit.
package monitor
