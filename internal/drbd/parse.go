package drbd

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// connLineRe matches a connection listing line:
//
//	0:r0/0  Connected Primary/Secondary UpToDate/UpToDate ...
//
// An Unconfigured resource may omit the role and disk pairs.
var connLineRe = regexp.MustCompile(`^\s*(\d+):(\S+)/(\d+)\s+(\S+)(?:\s+(\S+)/(\S+)\s+(\S+)/(\S+))?`)

var (
	capHeaderRe = regexp.MustCompile(`^(\S+)\s+(?:\S+\s+)*role:\S*`)
	capSizeRe   = regexp.MustCompile(`^\s*size:(\d+)\b`)
)

// ParseConnLine parses one line of the connection listing. The second
// return value is false when the line is not a resource line.
func ParseConnLine(line string) (ResourceStatus, bool) {
	m := connLineRe.FindStringSubmatch(line)
	if m == nil {
		return ResourceStatus{}, false
	}

	minor, err := strconv.Atoi(m[1])
	if err != nil {
		return ResourceStatus{}, false
	}
	volume, err := strconv.Atoi(m[3])
	if err != nil {
		return ResourceStatus{}, false
	}

	st := ResourceStatus{
		Name:          m[2],
		Minor:         minor,
		VolumeIndex:   volume,
		ConnState:     parseConnState(m[4]),
		Role:          RoleUnknown,
		PeerRole:      RoleUnknown,
		DiskState:     DiskUnconfigured,
		PeerDiskState: DiskUnconfigured,
	}

	if st.ConnState == ConnUnconfigured {
		return st, true
	}

	st.Role = parseRole(m[5])
	st.PeerRole = parseRole(m[6])
	st.DiskState = parseDiskState(m[7])
	st.PeerDiskState = parseDiskState(m[8])

	return st, true
}

func parseConnState(tok string) ConnState {
	switch tok {
	case "Unconfigured":
		return ConnUnconfigured
	case "Connected":
		return ConnConnected
	case "StandAlone":
		return ConnStandAlone
	default:
		return ConnWaitingForConnection
	}
}

func parseRole(tok string) Role {
	switch tok {
	case "Primary":
		return RolePrimary
	case "Secondary":
		return RoleSecondary
	default:
		return RoleUnknown
	}
}

func parseDiskState(tok string) DiskState {
	if tok == "UpToDate" {
		return DiskUpToDate
	}
	return DiskUnconfigured
}

// ParseOverview folds a complete connection listing into a map keyed by
// resource name. Unmatched lines are skipped. A resource listed once per
// sub-volume is reported by its sub-volume 0 line, or by its first line
// when there is none.
func ParseOverview(out string) (map[string]ResourceStatus, error) {
	res := make(map[string]ResourceStatus)
	err := forEachLine(out, func(line string) {
		st, ok := ParseConnLine(line)
		if !ok {
			return
		}
		if prev, seen := res[st.Name]; seen && (prev.VolumeIndex == 0 || st.VolumeIndex != 0) {
			return
		}
		res[st.Name] = st
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CapacityParser is the fold state for the capacity listing. A header line
// opens a block for a resource and the next size line closes it. The zero
// value is ready to use; Feed never mutates its receiver.
type CapacityParser struct {
	pending string
}

// Pending returns the resource whose block is open, if any.
func (p CapacityParser) Pending() string {
	return p.pending
}

// Feed consumes one line and returns the next parser state. When the line
// closes a block the completed Capacity is returned with ok set.
func (p CapacityParser) Feed(line string) (next CapacityParser, c Capacity, ok bool) {
	if m := capHeaderRe.FindStringSubmatch(line); m != nil {
		return CapacityParser{pending: m[1]}, Capacity{}, false
	}

	if p.pending == "" {
		return p, Capacity{}, false
	}

	m := capSizeRe.FindStringSubmatch(line)
	if m == nil {
		return p, Capacity{}, false
	}

	kib, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return p, Capacity{}, false
	}

	return CapacityParser{}, Capacity{Name: p.pending, SizeBytes: kib * KiB}, true
}

// ParseStatistics folds a complete capacity listing into a map keyed by
// resource name.
func ParseStatistics(out string) (map[string]Capacity, error) {
	res := make(map[string]Capacity)
	var p CapacityParser
	err := forEachLine(out, func(line string) {
		var (
			c  Capacity
			ok bool
		)
		p, c, ok = p.Feed(line)
		if ok {
			res[c.Name] = c
		}
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

const maxLineLen = 1024 * 1024

// forEachLine fails rather than stopping early, so a line the scanner
// cannot hold never yields a partial result.
func forEachLine(out string, fn func(string)) error {
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for sc.Scan() {
		fn(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read status output: %w", err)
	}
	return nil
}
