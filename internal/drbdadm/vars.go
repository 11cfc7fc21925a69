package drbdadm

// Command is the DRBD administration tool.
var Command = "drbdadm"

// OverviewCommand produces the connection listing.
var OverviewCommand = "drbd-overview"

// SetupCommand produces the capacity listing.
var SetupCommand = "drbdsetup"

var UpArgs = func(resource string) []string {
	return []string{"up", resource}
}

var DownArgs = func(resource string) []string {
	return []string{"down", resource}
}

var PrimaryArgs = func(resource string) []string {
	return []string{"primary", resource}
}

var SecondaryArgs = func(resource string) []string {
	return []string{"secondary", resource}
}

var AdjustArgs = func(resource string) []string {
	return []string{"adjust", resource}
}

var OverviewArgs = []string{}

var StatisticsArgs = []string{"status", "--statistics"}
