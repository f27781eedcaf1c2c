package sandboxes

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/google/shlex"
)

const (
	cpuPeriod = 100000
	maxCPUs   = 64

	// The engine refuses CFS quotas below 1ms; zero means unlimited
	minCPUQuota = 1000

	// The engine refuses smaller memory limits
	minMemory = 6 * units.MiB
)

// ParseCPU converts a fractional CPU count ("0.5", "2") to a CFS quota and period
func ParseCPU(s string) (quota, period int64, err error) {
	cpus, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cpu %q: %v", ErrInvalidLimits, s, err)
	}
	if math.IsNaN(cpus) || cpus <= 0 || cpus > maxCPUs {
		return 0, 0, fmt.Errorf("%w: cpu %q out of range (0, %d]", ErrInvalidLimits, s, maxCPUs)
	}
	quota = int64(cpus * cpuPeriod)
	if quota < minCPUQuota {
		return 0, 0, fmt.Errorf("%w: cpu %q below minimum %.2f", ErrInvalidLimits, s, float64(minCPUQuota)/cpuPeriod)
	}
	return quota, cpuPeriod, nil
}

// ParseMemory parses a Docker-style memory size ("512m", "1g", "268435456")
func ParseMemory(s string) (int64, error) {
	n, err := units.RAMInBytes(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: memory %q: %v", ErrInvalidLimits, s, err)
	}
	if n < minMemory {
		return 0, fmt.Errorf("%w: memory %q below minimum %s", ErrInvalidLimits, s, units.BytesSize(minMemory))
	}
	return n, nil
}

// ParseCommand splits a shell-style command line into arguments
func ParseCommand(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("parse command: empty")
	}
	return args, nil
}

// limitedBuffer keeps the first limit bytes written and discards the rest
type limitedBuffer struct {
	buf       bytes.Buffer
	limit     int64
	truncated bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.limit <= 0 {
		return b.buf.Write(p)
	}
	remaining := b.limit - int64(b.buf.Len())
	if remaining <= 0 {
		b.truncated = len(p) > 0 || b.truncated
		return len(p), nil
	}
	if int64(len(p)) > remaining {
		b.buf.Write(p[:remaining])
		b.truncated = true
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
