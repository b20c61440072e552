// Package report produces human-oriented summaries of a structure: per-node
// azimuth diagrams for the workshop and a plain-text cut list summary.
package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zomeworks/zome"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveNodeDiagram draws the incident edges of a node as rays on a unit
// circle, one ray per edge at its azimuth, labeled with the far vertex key
// and the angle to the directrix.
func SaveNodeDiagram(path string, node zome.NodeReport) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("node %s (visible %s)", node.Key, node.KeyVisible)
	p.X.Min, p.X.Max = -1.4, 1.4
	p.Y.Min, p.Y.Max = -1.4, 1.4
	p.X.Label.Text = "tangential"
	p.Y.Label.Text = "along directrix"

	var labelXYs plotter.XYs
	var labels []string
	for _, e := range node.Edges {
		az := e.AzimuthDeg * math.Pi / 180
		tip := plotter.XY{X: math.Cos(az), Y: math.Sin(az)}
		ray, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, tip})
		if err != nil {
			return err
		}
		p.Add(ray)
		labelXYs = append(labelXYs, plotter.XY{X: tip.X * 1.15, Y: tip.Y * 1.15})
		labels = append(labels, fmt.Sprintf("%s %.1f°", e.To, e.AngleToDirectrixDeg))
	}
	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(lbl)
	return p.Save(14*vg.Centimeter, 14*vg.Centimeter, path)
}

// SaveNodeDiagrams writes one diagram per representative node into dir,
// named node_<sanitized key>.png.
func SaveNodeDiagrams(dir string, s *zome.Structure) error {
	for _, node := range s.RepresentativeNodes() {
		name := "node_" + strings.ReplaceAll(node.Key, ":", "_") + ".png"
		if err := SaveNodeDiagram(filepath.Join(dir, name), node); err != nil {
			return fmt.Errorf("diagram for %s: %w", node.Key, err)
		}
	}
	return nil
}

// WriteSummary writes a plain-text overview: parameters, per-level node
// baselines with deviation counts, beam cut lengths and warnings.
func WriteSummary(w io.Writer, s *zome.Structure) error {
	p := s.Params
	fmt.Fprintf(w, "zome N=%d  Dmax=%.3fm  apex=%.2f°", p.N, p.DiameterMax, p.ApexAngleDeg)
	if p.CutActive {
		fmt.Fprintf(w, "  cut at level %d (floor diameter %.3fm)", p.CutLevel, p.FloorDiameter())
	}
	fmt.Fprintln(w)

	cls := s.Classify()
	levels := make([]int, 0, len(cls.BaselinePerLevel))
	for lvl := range cls.BaselinePerLevel {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	fmt.Fprintln(w, "\nnode baselines:")
	for _, lvl := range levels {
		fmt.Fprintf(w, "  level %-3d %s\n", lvl, cls.BaselinePerLevel[lvl])
	}
	if len(cls.Modified) > 0 {
		fmt.Fprintf(w, "modified nodes (%d):\n", len(cls.Modified))
		for _, key := range cls.Modified {
			fmt.Fprintf(w, "  %s\n", key)
		}
	}

	fmt.Fprintf(w, "\nbeams (%d):\n", len(s.Beams))
	for _, b := range s.Beams {
		fmt.Fprintf(w, "  %-32s %s  %.1fmm  profile %.0fx%.0fmm\n",
			b.EdgeKey, b.Kind, b.Length*1000, b.WidthMm(), b.HeightMm())
	}

	visible := 0
	for _, c := range s.Connectors {
		if !c.Hidden {
			visible++
		}
	}
	fmt.Fprintf(w, "\nconnectors: %d visible of %d\n", visible, len(s.Connectors))

	if len(s.Warnings) > 0 {
		fmt.Fprintf(w, "\nwarnings (%d):\n", len(s.Warnings))
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
	return nil
}

// SaveSummary writes the summary to a text file.
func SaveSummary(path string, s *zome.Structure) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return WriteSummary(fp, s)
}
