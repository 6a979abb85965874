// Package util provides small helpers shared by the command binaries.
package util

import "fmt"

func na(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// PrintBuildInfo prints the build version, date, and commit set via ldflags.
func PrintBuildInfo(buildVersion, buildDate, buildCommit string) {
	fmt.Printf("Build version: %s\n", na(buildVersion))
	fmt.Printf("Build date: %s\n", na(buildDate))
	fmt.Printf("Build commit: %s\n", na(buildCommit))
}
