package iocache

import (
	"fmt"

	"github.com/valuewise/marketval/schema"
)

// PrintCacheStatus prints result cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintHistoryStatus prints appraisal history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Analyses: %d\n", status.TotalAnalyses)
	if status.TotalAnalyses > 0 {
		fmt.Printf("Last Analysis ID: %d\n", status.LastAnalysisID)
		fmt.Printf("Last Analysis: %s\n", status.LastAnalysisTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Analysis: %s\n", status.OldestAnalysis.Format("2006-01-02 15:04:05"))
		fmt.Printf("Total Comparable Contributions: %d\n", status.TotalComparables)
	}
	fmt.Println("Table Sizes:")
	for table, size := range status.TableSizes {
		fmt.Printf("  %s: %d rows\n", table, size)
	}
}
