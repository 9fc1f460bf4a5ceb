// Package loopdetector watches a streamed run for a supervisor that keeps
// bouncing between workers or re-invoking the same tool without progress.
package loopdetector

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Default thresholds.
const (
	DefaultMaxHops          = 25 // routing changes per run
	DefaultMaxRepeatedTools = 5  // same tool+input started this many times
)

// Config holds the detection thresholds. Zero disables a check.
type Config struct {
	MaxHops          int
	MaxRepeatedTools int
}

// DefaultConfig returns the default detection configuration.
func DefaultConfig() Config {
	return Config{
		MaxHops:          DefaultMaxHops,
		MaxRepeatedTools: DefaultMaxRepeatedTools,
	}
}

// Detection is the result of a Check.
type Detection struct {
	Detected bool
	Reason   string
}

// Detector tracks routing hops and tool starts for a single run. It is not
// safe for concurrent use.
type Detector struct {
	config    Config
	hops      int
	lastAgent string
	toolNames map[string]string // hash -> tool name
	toolCount map[string]int    // hash -> count
}

// New creates a Detector with the given configuration.
func New(config Config) *Detector {
	return &Detector{
		config:    config,
		toolNames: make(map[string]string),
		toolCount: make(map[string]int),
	}
}

// NewWithDefaults creates a Detector with the default configuration.
func NewWithDefaults() *Detector {
	return New(DefaultConfig())
}

// RecordAgent records the worker the supervisor routed to. Repeating the
// current worker is not a hop.
func (d *Detector) RecordAgent(name string) {
	if name == "" || name == d.lastAgent {
		return
	}
	if d.lastAgent != "" {
		d.hops++
	}
	d.lastAgent = name
}

// RecordToolStart records a tool invocation reported by the server.
func (d *Detector) RecordToolStart(name, input string) {
	hash := hashToolCall(name, input)
	d.toolNames[hash] = name
	d.toolCount[hash]++
}

// Hops returns the number of routing changes seen so far.
func (d *Detector) Hops() int {
	return d.hops
}

// Check evaluates the current state.
func (d *Detector) Check() Detection {
	if d.config.MaxHops > 0 && d.hops >= d.config.MaxHops {
		return Detection{
			Detected: true,
			Reason:   fmt.Sprintf("supervisor rerouted %d times", d.hops),
		}
	}

	if d.config.MaxRepeatedTools > 0 {
		for hash, count := range d.toolCount {
			if count >= d.config.MaxRepeatedTools {
				return Detection{
					Detected: true,
					Reason:   fmt.Sprintf("tool %q started %d times with identical input", d.toolNames[hash], count),
				}
			}
		}
	}

	return Detection{}
}

// Reset clears all state.
func (d *Detector) Reset() {
	d.hops = 0
	d.lastAgent = ""
	d.toolNames = make(map[string]string)
	d.toolCount = make(map[string]int)
}

func hashToolCall(name, input string) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
