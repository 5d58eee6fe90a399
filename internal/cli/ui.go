package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Terminal palette
var (
	Brand  = color.New(color.FgHiYellow, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// field prints one aligned "label  value" line
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s  %s\n", Brand.Sprintf("%-12s", label), value)
}
