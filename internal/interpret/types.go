package interpret

// ParseInput is the raw text to interpret.
type ParseInput struct {
	Text string
}

// StatsOutput describes the interpretation cache.
type StatsOutput struct {
	CacheLen           int  `json:"cache_len"`
	CacheCapacity      int  `json:"cache_capacity"`
	InferenceAvailable bool `json:"inference_available"`
}

// WarmInput lists inputs to pre-populate the cache with.
type WarmInput struct {
	Texts []string
}

// WarmOutput summarises a warm-up run.
type WarmOutput struct {
	Parsed int
	Failed int
}
