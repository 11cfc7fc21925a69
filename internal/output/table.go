package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/status"
	"github.com/jbweber/drbdvol/internal/storage"
)

// TableFormatter formats resources as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatStorage formats a DRBDStorage as a single table row.
func (f *TableFormatter) FormatStorage(s *v1alpha1.DRBDStorage) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tRESOURCE\tPHASE\tROLE\tPEER\tDISK\tSIZE\tAGE")
	}

	role, peer, disk := "-", "-", "-"
	if c := s.Status.Connection; c != nil {
		role = c.Role
		peer = c.PeerRole
		disk = c.DiskState + "/" + c.PeerDiskState
	}

	age := "-"
	if !s.CreationTimestamp.IsZero() {
		age = formatAge(time.Since(s.CreationTimestamp))
	}

	phase := orDash(string(s.Status.Phase))
	if status.IsDegraded(s.Status.Phase) {
		phase += " (degraded)"
	}

	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		s.Name, s.Spec.Resource, phase, role, peer, disk,
		formatBytes(s.Status.CapacityBytes), age)

	_ = w.Flush()
	return buf.String(), nil
}

// FormatVolumes formats volumes as a table.
func (f *TableFormatter) FormatVolumes(vols []storage.VolumeInfo) (string, error) {
	if len(vols) == 0 {
		return "No volumes found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tVMID\tFORMAT\tSIZE\tPATH\tUSED BY")
	}

	for _, v := range vols {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			v.Name, v.VMID, v.Format, formatBytes(v.SizeBytes), v.Path, orDash(strings.Join(v.UsedBy, ",")))
	}

	_ = w.Flush()
	return buf.String(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatBytes formats a byte count with a binary unit.
// Examples: "512B", "4.0MiB", "1.5GiB"
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 4; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTP"[exp])
}

// formatAge formats a duration as a human-readable age string.
// Examples: "5s", "2m", "3h", "4d", "2w", "1y"
func formatAge(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	seconds := int(d.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	if days < 7 {
		return fmt.Sprintf("%dd", days)
	}

	weeks := days / 7
	if weeks < 8 {
		return fmt.Sprintf("%dw", weeks)
	}

	if years := days / 365; years > 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dd", days)
}
