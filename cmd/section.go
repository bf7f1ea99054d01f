package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/rcsched/internal/section"
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section <name>...",
	Short: "Parse ETABS beam section names",
	Long: `Read the width, depth and concrete grade from ETABS frame section
names, the way the schedule command does for every beam.

Examples:
  rcsched section B600X750-C45/56
  rcsched section "B400x800 C32" B300X600-C28`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}

func runSection(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Section\tWidth (mm)\tDepth (mm)\tf'c (MPa)\tCube (MPa)\tNormalized")
	for _, name := range args {
		d, err := section.Parse(name)
		if err != nil {
			w.Flush()
			return err
		}
		cube := "-"
		if d.Cube > 0 {
			cube = fmt.Sprintf("%g", d.Cube)
		}
		fmt.Fprintf(w, "  %s\t%g\t%g\t%g\t%s\t%s\n", d.Name, d.Width, d.Depth, d.Grade, cube, d)
	}
	return w.Flush()
}
