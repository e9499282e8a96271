// Package sysmon reports host CPU and memory usage for the server's health
// endpoint.
package sysmon

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultRefresh is how long the health endpoint reuses a snapshot.
const DefaultRefresh = time.Second

// Stats is one usage snapshot, both values in percent.
type Stats struct {
	CPUPercent float64 `json:"cpuPercent"`
	MemPercent float64 `json:"memPercent"`
}

// Sampler returns a usage snapshot.
type Sampler func() Stats

// Sample reads host usage. CPU is measured since the previous call; a
// metric that cannot be read is left at zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
	}
	return s
}

// NewCachedSampler wraps sample so that it runs at most once per refresh
// interval; calls in between get the last snapshot. A non-positive refresh
// returns sample unchanged.
func NewCachedSampler(sample Sampler, refresh time.Duration) Sampler {
	return newCachedSampler(sample, refresh, time.Now)
}

func newCachedSampler(sample Sampler, refresh time.Duration, now func() time.Time) Sampler {
	if refresh <= 0 {
		return sample
	}
	var (
		mu      sync.Mutex
		last    Stats
		expires time.Time
	)
	return func() Stats {
		mu.Lock()
		defer mu.Unlock()
		if t := now(); t.After(expires) || expires.IsZero() {
			last = sample()
			expires = t.Add(refresh)
		}
		return last
	}
}
