package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/dustin/go-humanize"

	"gallery-builder/internal/logging"
)

// DefaultRatio is the share of the container limit used for the Go heap.
const DefaultRatio = 0.85

// Sources reported in Limit.Source.
const (
	SourceGoMemLimit  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
	SourceNone        = "none"
)

// Limit is the outcome of Configure.
type Limit struct {
	Source         string
	ContainerLimit int64
	GoMemLimit     int64
	Ratio          float64
}

// Configured reports whether a heap limit is in effect.
func (l Limit) Configured() bool {
	return l.GoMemLimit > 0
}

// Configure applies MEMORY_LIMIT * MEMORY_RATIO as the soft memory limit
// unless GOMEMLIMIT is already set. Call it before decoding any image.
func Configure() Limit {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		l := Limit{Source: SourceGoMemLimit}
		if current := debug.SetMemoryLimit(-1); current > 0 && current < math.MaxInt64 {
			l.GoMemLimit = current
		}
		logging.Debug("GOMEMLIMIT set via environment: %s", env)
		return l
	}

	raw := os.Getenv("MEMORY_LIMIT")
	if raw == "" {
		return Limit{Source: SourceNone}
	}
	containerLimit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || containerLimit <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", raw)
		return Limit{Source: SourceNone}
	}

	ratio := DefaultRatio
	if raw := os.Getenv("MEMORY_RATIO"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		switch {
		case err != nil:
			logging.Warn("Failed to parse MEMORY_RATIO %q: %v, using %.2f", raw, err, DefaultRatio)
		case parsed <= 0 || parsed > 1:
			logging.Warn("MEMORY_RATIO %q out of range (0.0-1.0), using %.2f", raw, DefaultRatio)
		default:
			ratio = parsed
		}
	}

	limit := int64(float64(containerLimit) * ratio)
	debug.SetMemoryLimit(limit)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		humanize.IBytes(uint64(limit)), ratio*100, humanize.IBytes(uint64(containerLimit)))

	return Limit{
		Source:         SourceMemoryLimit,
		ContainerLimit: containerLimit,
		GoMemLimit:     limit,
		Ratio:          ratio,
	}
}
