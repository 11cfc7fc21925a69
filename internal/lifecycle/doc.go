// Package lifecycle moves a replicated resource into the state a caller
// needs: storage active or inactive, volume attached (Primary) or detached
// (Secondary).
//
// Every operation reads the live state first and issues only the admin
// verbs that state calls for. The replication engine offers no transaction,
// so the controller re-reads state after a verb whose effect the next
// decision depends on, instead of trusting the exit code.
//
// A failure midway leaves the resource wherever the engine put it. Nothing
// is rolled back; calling the operation again re-reads state and continues
// from there.
//
// Callers must not run operations for the same resource concurrently. No
// locking is done here.
package lifecycle
