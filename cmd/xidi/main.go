package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hamzahamidi/Xidi/internal/config"
	"github.com/hamzahamidi/Xidi/internal/configpaths"
	"github.com/hamzahamidi/Xidi/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("xidi"),
		kong.Description(Description()),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	packets := setupPacketLogger(&cli, logger, &closeFiles)

	ctx.Bind(logger)
	ctx.Bind(&cli.Options)
	ctx.BindTo(packets, (*log.PacketLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("XIDI_CONFIG")
}

func setupPacketLogger(cli *config.CLI, logger *slog.Logger, closeFiles *[]io.Closer) log.PacketLogger {
	if cli.Log.PacketFile != "" {
		f, err := os.OpenFile(cli.Log.PacketFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open packet dump file", "file", cli.Log.PacketFile, "error", err)
			return log.NewPacket(nil)
		}
		*closeFiles = append(*closeFiles, f)
		return log.NewPacket(f)
	}
	if cli.Log.Level == "trace" {
		return log.NewPacket(os.Stdout)
	}
	return log.NewPacket(nil)
}
