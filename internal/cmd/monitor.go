package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hamzahamidi/Xidi/internal/log"
	"github.com/hamzahamidi/Xidi/pkg/controller"
	"github.com/hamzahamidi/Xidi/pkg/xinput"
)

// Monitor polls one controller and logs every translated state change.
type Monitor struct {
	Interval time.Duration `help:"Polling interval" default:"8ms" env:"XIDI_POLL_INTERVAL"`
	Duration time.Duration `help:"Stop after this long (0: run until interrupted)" default:"0"`
	Events   bool          `help:"Report buffered change events instead of full packets" default:"false"`
}

// Run is called by Kong when the monitor command is executed.
func (m *Monitor) Run(opts *Options, logger *slog.Logger, packets log.PacketLogger) error {
	shape := opts.shape(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if m.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Duration)
		defer cancel()
	}

	device := xinput.NewSystemDevice(uint32(opts.Index))
	mapper := controller.NewMapper(shape, logger)
	vc := controller.NewVirtualController(device, mapper, logger)

	if err := mapper.SetDataFormat(controller.NativeDataFormat(shape)); err != nil {
		return fmt.Errorf("negotiating native data format: %w", err)
	}

	logger.Info("monitoring controller",
		"index", opts.Index, "shape", shape.Name(), "packetSize", mapper.PacketSize(), "interval", m.Interval)

	packet := make([]byte, mapper.PacketSize())
	events := make([]controller.EventData, xinput.DefaultEventBufferCapacity)

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping monitor")
			return nil
		case <-ticker.C:
		}

		if !vc.Refresh() {
			continue
		}

		state, status := vc.State()
		if status != xinput.StatusSuccess {
			logger.Warn("controller disconnected", "index", opts.Index, "status", status)
			continue
		}

		if m.Events {
			n, overflowed, err := vc.BufferedEvents(events, len(events), false)
			if err != nil {
				return err
			}
			if overflowed {
				logger.Warn("event buffer overflowed; oldest events were dropped")
			}
			for _, ev := range events[:n] {
				logger.Info("event",
					"offset", ev.Offset, "value", ev.Value, "sequence", ev.Sequence, "timestamp", ev.Timestamp)
			}
			continue
		}

		if err := vc.WriteState(packet); err != nil {
			return err
		}
		logger.Info("state changed", "packet", state.PacketNumber)
		packets.Packet(fmt.Sprintf("packet %d", state.PacketNumber), packet)
	}
}
