// Package config defines the CLI structure and configuration for xidi.
package config

import (
	"github.com/hamzahamidi/Xidi/internal/cmd"
)

type Log struct {
	Level      string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"XIDI_LOG_LEVEL"`
	File       string `help:"Log file path (default: none; logs only to console)" env:"XIDI_LOG_FILE"`
	PacketFile string `help:"Data packet dump file path (default: none)" env:"XIDI_LOG_PACKET_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log         `embed:"" prefix:"log."`
	cmd.Options `embed:"" prefix:"controller."`

	Monitor cmd.Monitor `cmd:"" help:"Poll a controller and print translated state and events"`
	Objects cmd.Objects `cmd:"" help:"List the virtual objects a controller layout exposes"`
	Shapes  cmd.Shapes  `cmd:"" help:"List the built-in controller layouts"`
}
