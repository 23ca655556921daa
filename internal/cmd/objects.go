package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/hamzahamidi/Xidi/pkg/controller"
	"gopkg.in/yaml.v3"
)

// Objects lists every virtual object a controller layout exposes, with its
// native packet offset, the way an application would see them enumerated.
type Objects struct {
	Format string `help:"Output format" enum:"table,yaml" default:"table"`
}

type objectReport struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Offset int32  `yaml:"offset"`
	Tag    uint32 `yaml:"tag"`
}

// Run is called by Kong when the objects command is executed.
func (o *Objects) Run(opts *Options, logger *slog.Logger) error {
	shape := opts.shape(logger)
	mapper := controller.NewMapper(shape, logger)

	var report []objectReport
	err := mapper.EnumerateObjects(controller.TypeAll, func(oi *controller.ObjectInstance) controller.EnumResponse {
		report = append(report, objectReport{
			Name:   oi.Name,
			Type:   oi.Guid.String(),
			Offset: oi.Offset,
			Tag:    uint32(oi.TypeTag),
		})
		return controller.EnumContinue
	})
	if err != nil {
		return err
	}

	if o.Format == "yaml" {
		return yaml.NewEncoder(os.Stdout).Encode(report)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTYPE\tOFFSET\tTAG")
	for _, r := range report {
		fmt.Fprintf(w, "%s\t%s\t%d\t%#08x\n", r.Name, r.Type, r.Offset, r.Tag)
	}
	return w.Flush()
}
