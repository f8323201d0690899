package lsystem

import "github.com/willbeason/procedural-trees/pkg/noise"

// DefaultJitterSize is the number of precomputed jitter values.
const DefaultJitterSize = 1000

// A JitterTable holds fixed perturbations in [-1, 1) addressed by scan
// position. It is never written after construction, so one table may be
// shared by interpreters on different goroutines.
type JitterTable []float64

// NewJitterTable draws size values from src.
func NewJitterTable(src noise.Source, size int) JitterTable {
	t := make(JitterTable, size)
	for i := range t {
		t[i] = noise.Range(src, -1, 1)
	}
	return t
}

// At is the jitter for scan position k.
func (t JitterTable) At(k int) float64 {
	if len(t) == 0 {
		return 0
	}
	return t[k%len(t)]
}
