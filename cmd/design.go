package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/rcsched/internal/beam"
	"github.com/alexiusacademia/rcsched/internal/design"
	"github.com/alexiusacademia/rcsched/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	// Beam identity and geometry
	designStorey string
	designID     string
	designWidth  float64
	designDepth  float64
	designSpan   float64
	designFc     float64

	// Demands per station (left, middle, right)
	designTop               []float64
	designBottom            []float64
	designTorsion           []float64
	designShearForce        []float64
	designShear             []float64
	designTorsionTransverse []float64

	// Overstress flags from the analysis
	designPositiveOS bool
	designNegativeOS bool
	designShearOS    bool
	designTorsionOS  bool

	// Design options
	designMaxLayers   int
	designFlagMapping string

	// Diagram options
	designShowDiagram bool
	designStation     string
	designExportFile  string
)

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design the reinforcement of a single beam",
	Long: `Select flexural bars, stirrups and side-face bars for one beam from
the required areas reported by the analysis.

Station values are given left,middle,right. A single value is used at
all three stations.

Examples:
  # Design a 400x800mm beam spanning 2.65m
  rcsched design --id B46 --width 400 --depth 800 --span 2650 --fc 45 \
    --top 365,173,195 --bottom 207,247,146 --torsion 2500 \
    --shear-force 30,31,36 --shear 105,107,107 --torsion-transverse 792,792,761

  # Show the midspan section and save it as an image
  rcsched design ... --diagram --station middle -o b46.png`,
	RunE: runDesign,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringVar(&designStorey, "storey", "", "Storey label")
	designCmd.Flags().StringVar(&designID, "id", "B1", "Beam label")

	// Geometry flags
	designCmd.Flags().Float64VarP(&designWidth, "width", "b", 0, "Beam width (mm) [required]")
	designCmd.Flags().Float64Var(&designDepth, "depth", 0, "Beam total depth (mm) [required]")
	designCmd.Flags().Float64Var(&designSpan, "span", 0, "Clear span (mm) [required]")

	// Material flags
	designCmd.Flags().Float64Var(&designFc, "fc", 28, "Concrete compressive strength f'c (MPa)")

	// Demand flags
	designCmd.Flags().Float64SliceVar(&designTop, "top", nil, "Required top steel area (mm²)")
	designCmd.Flags().Float64SliceVar(&designBottom, "bottom", nil, "Required bottom steel area (mm²)")
	designCmd.Flags().Float64SliceVar(&designTorsion, "torsion", nil, "Required torsion longitudinal steel (mm²)")
	designCmd.Flags().Float64SliceVar(&designShearForce, "shear-force", nil, "Design shear force (kN)")
	designCmd.Flags().Float64SliceVar(&designShear, "shear", nil, "Required shear reinforcement Av/s (mm²/m)")
	designCmd.Flags().Float64SliceVar(&designTorsionTransverse, "torsion-transverse", nil, "Required torsion transverse reinforcement At/s (mm²/m)")

	designCmd.Flags().BoolVar(&designPositiveOS, "positive-overstress", false, "Positive moment reported overstressed")
	designCmd.Flags().BoolVar(&designNegativeOS, "negative-overstress", false, "Negative moment reported overstressed")
	designCmd.Flags().BoolVar(&designShearOS, "shear-overstress", false, "Shear reported overstressed")
	designCmd.Flags().BoolVar(&designTorsionOS, "torsion-overstress", false, "Torsion reported overstressed")

	designCmd.Flags().IntVar(&designMaxLayers, "max-layers", 0, "Maximum flexural layers (default from config)")
	designCmd.Flags().StringVar(&designFlagMapping, "flag-mapping", "", "Moment flag mapping: any or per-face (default from config)")

	// Mark required flags
	designCmd.MarkFlagRequired("width")
	designCmd.MarkFlagRequired("depth")
	designCmd.MarkFlagRequired("span")

	// Diagram options
	designCmd.Flags().BoolVar(&designShowDiagram, "diagram", false, "Show ASCII cross-section")
	designCmd.Flags().StringVar(&designStation, "station", "left", "Station to draw (left, middle, right)")
	designCmd.Flags().StringVarP(&designExportFile, "output", "o", "", "Export cross-section to file (png, svg, pdf)")
}

func runDesign(cmd *cobra.Command, args []string) error {
	in := beam.Input{
		Storey: designStorey,
		ID:     designID,
		Width:  designWidth,
		Depth:  designDepth,
		Span:   designSpan,
		Grade:  designFc,
		FlexOverstress: beam.FlexureFlags{
			Positive: designPositiveOS,
			Negative: designNegativeOS,
		},
		ShearOverstress: beam.ShearFlags{
			Shear:   designShearOS,
			Torsion: designTorsionOS,
		},
	}

	triples := []struct {
		flag string
		vals []float64
		dst  *beam.Triple
	}{
		{"top", designTop, &in.Top},
		{"bottom", designBottom, &in.Bottom},
		{"torsion", designTorsion, &in.TorsionLongitudinal},
		{"shear-force", designShearForce, &in.ShearForce},
		{"shear", designShear, &in.ShearArea},
		{"torsion-transverse", designTorsionTransverse, &in.TorsionTransverse},
	}
	for _, t := range triples {
		v, err := stationValues(t.flag, t.vals)
		if err != nil {
			return err
		}
		*t.dst = v
	}

	station, err := parseStation(designStation)
	if err != nil {
		return err
	}

	opts, err := cfg.DesignOptions()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-layers") {
		if designMaxLayers < 1 {
			return fmt.Errorf("--max-layers must be at least 1, got %d", designMaxLayers)
		}
		opts.MaxLayers = designMaxLayers
	}
	if cmd.Flags().Changed("flag-mapping") {
		if opts.FlagMapping, err = design.ParseFlagMapping(designFlagMapping); err != nil {
			return err
		}
	}

	rec, err := beam.New(in)
	if err != nil {
		return err
	}
	d := design.Run(rec, opts)
	logger.Debug("beam designed", "beam", rec.Name(), "state", d.State().String())

	out := cmd.OutOrStdout()
	printDesign(out, d)

	if designShowDiagram {
		fmt.Fprintln(out, "CROSS-SECTION:")
		fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
		fmt.Fprint(out, diagram.DrawASCIISection(diagram.FromDesign(d, station)))
		fmt.Fprintln(out)
	}

	if designExportFile != "" {
		if err := diagram.ExportSection(diagram.FromDesign(d, station), designExportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "  Diagram exported to: %s\n\n", designExportFile)
	}
	return nil
}

// stationValues expands a flag value into left, middle and right
func stationValues(flag string, vals []float64) (beam.Triple, error) {
	switch len(vals) {
	case 0:
		return beam.Triple{}, nil
	case 1:
		return beam.Triple{vals[0], vals[0], vals[0]}, nil
	case 3:
		return beam.Triple{vals[0], vals[1], vals[2]}, nil
	}
	return beam.Triple{}, fmt.Errorf("--%s takes 1 or 3 values, got %d", flag, len(vals))
}

func parseStation(s string) (beam.Station, error) {
	for _, st := range beam.Stations {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown station %q (use left, middle or right)", s)
}

func printDesign(out io.Writer, d *design.Design) {
	rec := d.Record

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     BEAM REINFORCEMENT DESIGN - %s\n", rec.Name())
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", rec.Width)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", rec.Depth())
	fmt.Fprintf(w, "  Effective Depth (d):\t%.0f mm\n", rec.EffectiveDepth())
	fmt.Fprintf(w, "  Span:\t%.0f mm\n", rec.Span)
	fmt.Fprintf(w, "  f'c:\t%.1f MPa\n", rec.Grade)
	fmt.Fprintf(w, "  Max layers:\t%d\n", d.Options.MaxLayers)
	fmt.Fprintf(w, "  Flag mapping:\t%s\n", d.Options.FlagMapping)
	w.Flush()
	fmt.Fprintln(out)

	// Flexure
	fmt.Fprintln(out, "FLEXURAL REINFORCEMENT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Station\tFace\tBars\tRequired (mm²)\tProvided (mm²)\tUtil (%)")
	for _, s := range beam.Stations {
		for _, face := range []design.Face{design.Top, design.Bottom} {
			c := d.Flexural.Face(face)[s]
			fmt.Fprintf(w, "  %s\t%s\t%s\t%.0f\t%.0f\t%s\n", s, face, c.Label, c.Required, c.Provided, c.UtilizationText())
		}
	}
	w.Flush()
	if d.Flexural.TorsionSplit {
		fmt.Fprintln(out, "  Torsion longitudinal steel split to the top and bottom faces.")
	}
	fmt.Fprintln(out)

	// Shear
	fmt.Fprintln(out, "STIRRUPS:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Station\tLinks\tRequired (mm²/m)\tProvided (mm²/m)\tUtil (%)")
	for _, s := range beam.Stations {
		l := d.Shear.Links[s]
		fmt.Fprintf(w, "  %s\t%s\t%.0f\t%.0f\t%s\n", s, l.Label, l.Required, l.Provided, l.UtilizationText())
	}
	w.Flush()
	if d.Shear.CheckTransverseSpacing {
		fmt.Fprintln(out, "  Vs > 0.33√f'c·bw·d: check transverse spacing of stirrup legs.")
	}
	fmt.Fprintln(out)

	// Side face
	fmt.Fprintln(out, "SIDE-FACE REINFORCEMENT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	sf := d.Sideface
	fmt.Fprintf(w, "  Bars:\t%s\n", sf.Choice.Label)
	if sf.Active {
		fmt.Fprintf(w, "  Clear height:\t%.0f mm\n", sf.ClearSpace)
		fmt.Fprintf(w, "  Required:\t%.0f mm²\n", sf.Choice.Required)
		fmt.Fprintf(w, "  Provided:\t%.0f mm²\n", sf.Choice.Provided)
		fmt.Fprintf(w, "  Utilization:\t%s %%\n", sf.Choice.UtilizationText())
	}
	w.Flush()
	fmt.Fprintln(out)

	// Quantities
	q := d.Quantities()
	fmt.Fprintln(out, "QUANTITIES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tArea (m²)\tVolume (m³)")
	fmt.Fprintf(w, "  Concrete\t%.3f\t%.3f\n", q.ConcreteArea, q.ConcreteVolume)
	fmt.Fprintf(w, "  Flexural steel\t%.3f\t%.3f\n", q.FlexuralArea, q.FlexuralVolume)
	fmt.Fprintf(w, "  Stirrups\t%.3f\t%.3f\n", q.ShearArea, q.ShearVolume)
	fmt.Fprintf(w, "  Side-face steel\t%.3f\t%.3f\n", q.SidefaceArea, q.SidefaceVolume)
	fmt.Fprintf(w, "  Total steel\t%.3f\t%.3f\n", q.TotalArea, q.TotalVolume)
	w.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "DESIGN RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	labels := func(face design.Face) string {
		c := d.Flexural.Face(face)
		return fmt.Sprintf("%s | %s | %s", c[beam.Left].Label, c[beam.Middle].Label, c[beam.Right].Label)
	}
	l := d.Shear.Links
	fmt.Fprint(out, diagram.DrawSummaryBox(strings.ToUpper(rec.Name()), []string{
		"Top:       " + labels(design.Top),
		"Bottom:    " + labels(design.Bottom),
		fmt.Sprintf("Links:     %s | %s | %s", l[beam.Left].Label, l[beam.Middle].Label, l[beam.Right].Label),
		"Side face: " + sf.Choice.Label,
	}))
	fmt.Fprintf(out, "  %s\n\n", renderState(d.State()))
}
