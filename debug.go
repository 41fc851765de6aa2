package plexus

import (
	"fmt"
	"time"
)

// debugLogEvery is the tick interval between debug log lines.
const debugLogEvery = 60

// debugStats holds per-frame timings and entity counts.
// Only populated when Layer.debug is true.
type debugStats struct {
	stepTime    time.Duration
	paintTime   time.Duration
	points      int
	connections int
	packets     int
}

// debugLog prints timing and count stats to the layer's debug writer.
func (l *Layer) debugLog(stats debugStats) {
	if !l.debug || l.ticks%debugLogEvery != 0 {
		return
	}
	l.logf("tick %d | step: %v | paint: %v | total: %v",
		l.ticks, stats.stepTime, stats.paintTime, stats.stepTime+stats.paintTime)
	l.logf("points: %d | connections: %d | packets: %d",
		stats.points, stats.connections, stats.packets)
}

// logf writes one prefixed line to the debug writer, if any.
func (l *Layer) logf(format string, args ...any) {
	if l.debugOut == nil {
		return
	}
	_, _ = fmt.Fprintf(l.debugOut, "[plexus] "+format+"\n", args...)
}
