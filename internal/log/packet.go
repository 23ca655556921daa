package log

import (
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"
)

// PacketLogger records translated application data packets for offline
// inspection, independent of the structured logger.
type PacketLogger interface {
	Packet(label string, data []byte)
}

// NewPacket creates a PacketLogger writing hex dumps to w. A nil writer
// yields a logger that discards everything.
func NewPacket(w io.Writer) PacketLogger {
	return &packetLogger{w: w}
}

type packetLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *packetLogger) Packet(label string, data []byte) {
	if p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s (%d bytes)\n%s", time.Now().Format(time.RFC3339Nano), label, len(data), hex.Dump(data))
}
