package commands

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/vivekpatel25/acac-war/internal/contracts"
)

// PrintHeader prints a command banner
func PrintHeader(title string) {
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintDoubleSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	total := 0
	for i, width := range widths {
		total += width
		if i < len(widths)-1 {
			total += 2 // spacing
		}
	}
	for i := 0; i < total; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintPartitionResults prints one line per division run and the diagnostics of failures or excluded rows
func PrintPartitionResults(results []*contracts.PartitionResult) {
	widths := []int{10, 8, 8, 10, 8, 40}
	PrintTableHeader([]string{"DIVISION", "STATUS", "PLAYERS", "EXCLUDED", "TIME", "OUTPUT"}, widths)

	for _, r := range results {
		status := "ok"
		output := r.OutputPath
		if !r.Success() {
			status = "FAILED"
			output = r.Error
		}
		PrintTableRow([]string{
			r.Division,
			status,
			strconv.Itoa(r.Players),
			strconv.Itoa(r.Diagnostics.Excluded()),
			r.Duration.Round(time.Millisecond).String(),
			output,
		}, widths)
	}
}

// PrintDiagnostics prints the non-zero counters of a run
func PrintDiagnostics(d contracts.Diagnostics) {
	fields := d.AsFields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if n, ok := fields[key].(int); ok && n > 0 {
			PrintKeyValue(key, strconv.Itoa(n), 26)
		}
	}
}
