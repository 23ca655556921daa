// Package cmd implements the xidi CLI commands.
package cmd

import (
	"log/slog"

	"github.com/hamzahamidi/Xidi/pkg/controller"
)

// Options are the controller selection flags shared by all commands.
type Options struct {
	Shape string `help:"Controller layout: StandardGamepad, ExtendedGamepad, XInputNative or XInputSharedTriggers" default:"StandardGamepad" env:"XIDI_SHAPE"`
	Index uint   `help:"XInput user index (0-3)" default:"0" env:"XIDI_USER_INDEX"`
}

// shape resolves the configured layout name. An unrecognized name falls
// back to the default layout rather than failing the command.
func (o *Options) shape(logger *slog.Logger) *controller.Shape {
	s := controller.ShapeByName(o.Shape)
	if s == nil {
		s = controller.DefaultShape
		logger.Warn("unknown controller layout, using default", "requested", o.Shape, "shape", s.Name())
	} else {
		logger.Debug("selected controller layout", "shape", s.Name())
	}
	return s
}
