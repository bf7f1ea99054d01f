package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/rcsched/internal/batch"
	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/alexiusacademia/rcsched/internal/etabs"
	"github.com/alexiusacademia/rcsched/internal/schedule"
	"github.com/spf13/cobra"
)

var (
	scheduleInput   string
	scheduleOutput  string
	schedulePDF     string
	scheduleWorkers int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Design every beam of a model and export the reinforcement schedule",
	Long: `Read the beams of a model, design them concurrently and write the
reinforcement and quantities schedule to an Excel workbook.

The input is either an ETABS concrete beam design export (.xlsx) with the
"Frame Assignments - Summary", "Concrete Beam Flexure Envelope - ACI 318-19"
and "Concrete Beam Shear Envelope - ACI 318-19" tables, or a batch file (.json, .yaml)
holding a list of beams.

Examples:
  # Schedule an ETABS export
  rcsched schedule --input model.xlsx --output schedule.xlsx

  # Schedule a batch file and print a PDF as well
  rcsched schedule -i beams.yaml -o schedule.xlsx --pdf schedule.pdf --workers 8`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVarP(&scheduleInput, "input", "i", "", "ETABS export (.xlsx) or batch file (.json, .yaml) [required]")
	scheduleCmd.Flags().StringVarP(&scheduleOutput, "output", "o", "schedule.xlsx", "Schedule workbook to write")
	scheduleCmd.Flags().StringVar(&schedulePDF, "pdf", "", "Also write a PDF schedule")
	scheduleCmd.Flags().IntVarP(&scheduleWorkers, "workers", "w", 0, "Beams designed concurrently (default from config)")

	scheduleCmd.MarkFlagRequired("input")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	inputs, err := loadInputs(scheduleInput)
	if err != nil {
		return err
	}
	logger.Info("beams loaded", "input", scheduleInput, "beams", len(inputs))

	opts, err := cfg.DesignOptions()
	if err != nil {
		return err
	}
	workers := cfg.Workers()
	if cmd.Flags().Changed("workers") {
		workers = scheduleWorkers
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := batch.NewRunner(opts, workers, logger).Run(ctx, inputs)
	if err != nil {
		return err
	}

	rows, quantities := schedule.Build(res.Designs())
	if err := schedule.SaveXLSX(scheduleOutput, rows, quantities); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}

	if schedulePDF != "" {
		if err := savePDF(schedulePDF, schedule.Report{
			Title:   cfg.Report.Title,
			Project: cfg.Report.Project,
			RunID:   res.RunID,
			Date:    time.Now(),
		}, rows, quantities); err != nil {
			return fmt.Errorf("writing pdf: %w", err)
		}
	}

	printSummary(cmd.OutOrStdout(), res, quantities)
	return nil
}

// loadInputs reads beams from an ETABS workbook or a batch file
func loadInputs(path string) ([]beam.Input, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return etabs.ReadFile(path)
	default:
		return beam.LoadFile(path)
	}
}

func savePDF(path string, rep schedule.Report, rows []schedule.Row, quantities []schedule.QuantityRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := schedule.WritePDF(f, rep, rows, quantities); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(out io.Writer, res *batch.Result, quantities []schedule.QuantityRow) {
	counts := res.Counts()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     BEAM REINFORCEMENT SCHEDULE")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Run:\t%s\n", res.RunID)
	fmt.Fprintf(w, "  Input:\t%s\n", scheduleInput)
	fmt.Fprintf(w, "  Schedule:\t%s\n", scheduleOutput)
	if schedulePDF != "" {
		fmt.Fprintf(w, "  PDF:\t%s\n", schedulePDF)
	}
	fmt.Fprintf(w, "  Beams:\t%d\n", len(res.Items))
	fmt.Fprintf(w, "  Duration:\t%s\n", res.Duration.Round(time.Millisecond))
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "DESIGN STATES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, s := range []design.State{design.Nominal, design.FlexOverstressed, design.ShearOverstressed, design.Unsolvable} {
		fmt.Fprintf(w, "  %s\t%d\n", renderState(s), counts[s])
	}
	w.Flush()
	fmt.Fprintln(out)

	if failed := res.Failed(); len(failed) > 0 {
		fmt.Fprintln(out, "REJECTED BEAMS:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		for _, it := range failed {
			fmt.Fprintf(out, "  %s\n", failStyle.Render("✗ "+it.Err.Error()))
		}
		fmt.Fprintln(out)
	}

	t := schedule.Totals(quantities)
	fmt.Fprintln(out, "QUANTITIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Concrete:\t%.3f m³\n", t.ConcreteVolume)
	fmt.Fprintf(w, "  Reinforcement:\t%.3f m³\n", t.TotalVolume)
	w.Flush()
	fmt.Fprintln(out)
}
