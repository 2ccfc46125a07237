// Package fsort sorts float64 slices under a total order consistent with
// IEEE-754 semantics: every negative value below every non-negative one,
// -0.0 immediately below +0.0, NaNs placed deterministically by their raw
// bit pattern. Datasets that exceed the configured memory budget are sorted
// out of core through disk-resident sorted runs.
package fsort

// valueSize is the on-disk and in-memory size of one element in bytes.
const valueSize = 8

// Sort orders data ascending under the IEEE-754 total order, in place.
// Equal values keep their input order on the in-memory path; the external
// path breaks ties among equal values by read order, deterministic for a
// given strategy and run partition.
//
// The external path is taken when config.External is set or the data does
// not fit config.MemoryLimit. A configured Trace accumulator is reset on
// entry and readable after Sort returns. NaN and Inf inputs are never
// errors; every returned error is fatal to the invocation and leaves no
// usable partial result.
func Sort(data []float64, config *Config) error {
	cfg, err := mergeConfig(config)
	if err != nil {
		return err
	}
	if cfg.Trace != nil {
		cfg.Trace.Reset()
	}
	if len(data) == 0 {
		return nil
	}
	if !cfg.External && (cfg.MemoryLimit == 0 || len(data)*valueSize <= cfg.MemoryLimit) {
		sortInMemory(data, cfg)
		return nil
	}
	return sortExternal(data, cfg)
}

// sortInMemory keys the whole input, sorts the entries, and writes the
// values back in place. tie and seq carry the original index, so the result
// is fully stable.
func sortInMemory(data []float64, cfg *Config) {
	arr := make([]entry, len(data))
	for i, v := range data {
		arr[i] = makeEntry(v, uint64(i))
	}
	scratch := make([]entry, len(arr))
	sortEntries(arr, scratch, cfg.Parallel, cfg.Trace)
	for i := range arr {
		data[i] = arr[i].value
	}
}
