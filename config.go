package fsort

// MergeStrategy selects how the external engine consolidates run files.
type MergeStrategy int

const (
	// MergePairwise merges runs two at a time over ceil(log2 k) rounds.
	// Needs two open runs at a time regardless of k.
	MergePairwise MergeStrategy = iota
	// MergeKWay merges every run in a single pass through a min-priority
	// queue. Needs one open handle and one buffer per run.
	MergeKWay
)

// Config holds configuration settings for a Sort call.
type Config struct {
	External       bool          // force the out-of-core path even when data fits in memory
	Parallel       bool          // fan out the in-memory sort across goroutines
	Trace          *Trace        // curvature accumulator, nil disables tracing
	MemoryLimit    int           // working-set budget in bytes, 0 for unbounded
	BufferElements int           // elements per run-file I/O buffer
	Merge          MergeStrategy // run consolidation strategy for the external path
	TempDir        string        // scratch directory for run files, empty to auto-select
}

// DefaultConfig returns the default configuration options used if none provided.
func DefaultConfig() *Config {
	return &Config{
		BufferElements: 1 << 15,
		Merge:          MergePairwise,
	}
}

// mergeConfig takes a provided config and replaces any values not set with
// the defaults. Negative values are rejected rather than normalized: a
// sub-element MemoryLimit is clamped later, but a negative one is a caller
// bug. The input is not modified.
func mergeConfig(c *Config) (*Config, error) {
	d := DefaultConfig()
	if c == nil {
		return d, nil
	}
	out := *c
	if out.BufferElements < 0 {
		return nil, &ConfigError{Field: "BufferElements", Value: out.BufferElements, Reason: "must be at least 1"}
	}
	if out.BufferElements == 0 {
		out.BufferElements = d.BufferElements
	}
	if out.MemoryLimit < 0 {
		return nil, &ConfigError{Field: "MemoryLimit", Value: out.MemoryLimit, Reason: "must be non-negative"}
	}
	return &out, nil
}

// chunkElements converts the memory budget into a chunk length for run
// generation, clamped to one element so a sub-element budget degrades to
// single-element runs instead of failing. n is the total input length.
func (c *Config) chunkElements(n int) int {
	if c.MemoryLimit <= 0 {
		return n
	}
	elems := c.MemoryLimit / valueSize
	if elems < 1 {
		elems = 1
	}
	if elems > n {
		elems = n
	}
	return elems
}
