package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hamzahamidi/Xidi/pkg/controller"
	"gopkg.in/yaml.v3"
)

// Shapes lists the built-in controller layouts and their element counts.
type Shapes struct {
	Format string `help:"Output format" enum:"table,yaml" default:"table"`
}

type shapeReport struct {
	Name    string   `yaml:"name"`
	Axes    []string `yaml:"axes"`
	Buttons int      `yaml:"buttons"`
	Povs    int      `yaml:"povs"`
	Default bool     `yaml:"default,omitempty"`
}

// Run is called by Kong when the shapes command is executed.
func (s *Shapes) Run(logger *slog.Logger) error {
	var report []shapeReport
	for _, shape := range controller.Shapes() {
		axes := make([]string, shape.NumInstances(controller.KindAxis))
		for i := range axes {
			axes[i] = shape.AxisType(i).String()
		}
		report = append(report, shapeReport{
			Name:    shape.Name(),
			Axes:    axes,
			Buttons: shape.NumInstances(controller.KindButton),
			Povs:    shape.NumInstances(controller.KindPov),
			Default: shape == controller.DefaultShape,
		})
	}

	if s.Format == "yaml" {
		return yaml.NewEncoder(os.Stdout).Encode(report)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAXES\tBUTTONS\tPOVS")
	for _, r := range report {
		name := r.Name
		if r.Default {
			name += " (default)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", name, strings.Join(r.Axes, ", "), r.Buttons, r.Povs)
	}
	return w.Flush()
}
