package sac

import "fmt"

// formatG renders v as SAC's alpha float field: %#15.7g.
func formatG(v float64) string {
	return fmt.Sprintf("%#15.7g", v)
}

// formatD renders v as SAC's alpha int field: %10d.
func formatD(v int64) string {
	return fmt.Sprintf("%10d", v)
}
