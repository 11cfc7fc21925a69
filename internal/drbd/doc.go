// Package drbd models the live state of a replicated DRBD resource and parses
// the text reported by the DRBD status tools.
//
// Two listings feed the model:
//   - the connection listing (drbd-overview), one line per resource volume:
//     "<minor>:<name>/<volume> <conn> <role>/<peer-role> <disk>/<peer-disk> ..."
//   - the capacity listing (drbdsetup status --statistics), a block per
//     resource opened by a "<name> ... role:<role>" header and closed by the
//     first "size:<KiB>" line that follows it.
//
// Parsing is pure. Lines that do not match either shape are skipped so the
// parsers tolerate informational output interleaved by the tools. Capacity
// block tracking is an explicit CapacityParser value threaded through the
// fold rather than shared state.
package drbd
