// Package drbdadm runs the external DRBD tools: the five state-changing
// drbdadm verbs (up, down, primary, secondary, adjust) and the two status
// listings consumed by the registry.
//
// Every invocation is synchronous and blocks until the process exits.
// Failures are returned as *CommandError with the captured diagnostic
// output; nothing is retried. Executable names and argument builders are
// package variables so hosts can point at different tool paths and tests
// can swap ExecCommandContext (see the fake subpackage).
package drbdadm
