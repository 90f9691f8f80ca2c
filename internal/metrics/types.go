package metrics

import "time"

type HTTPMetric struct {
	Time       time.Time
	Method     string
	Path       string
	StatusCode int
	DurationMs float64
	ClientIP   string
	Error      string
}

type InfraMetric struct {
	Time         time.Time
	PoolAcquired int
	PoolIdle     int
	PoolTotal    int
	PoolMax      int
	Goroutines   int
	HeapAllocMB  float64
}
