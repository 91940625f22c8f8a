// Package resource samples instantaneous system utilization: CPU and memory
// always, GPU best-effort when built with NVML support.
package resource

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// Sample is a transient utilization snapshot. GPUPercent is -1 when no GPU
// data is available.
type Sample struct {
	CPUPercent    float64
	MemoryPercent float64
	GPUPercent    float64
}

// Sampler produces utilization samples
type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// cpuSampleWindow is the measurement interval for a single CPU reading
const cpuSampleWindow = 600 * time.Millisecond

// SystemSampler reads system-wide utilization via gopsutil, plus NVML GPU
// utilization on builds that support it.
type SystemSampler struct {
	logger *zap.Logger
	gpu    *gpuCollector
}

// NewSystemSampler creates a system sampler. GPU collection initializes
// lazily and degrades to "no data" on machines without a usable GPU.
func NewSystemSampler(logger *zap.Logger) *SystemSampler {
	return &SystemSampler{
		logger: logger,
		gpu:    newGPUCollector(logger),
	}
}

// Sample measures CPU utilization over a short window, reads current memory
// utilization, and attaches GPU utilization when available.
func (s *SystemSampler) Sample(ctx context.Context) (Sample, error) {
	cpuPcts, err := cpu.PercentWithContext(ctx, cpuSampleWindow, false)
	if err != nil {
		return Sample{}, fmt.Errorf("sample cpu: %w", err)
	}
	if len(cpuPcts) == 0 {
		return Sample{}, fmt.Errorf("sample cpu: no data")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("sample memory: %w", err)
	}

	sample := Sample{
		CPUPercent:    cpuPcts[0],
		MemoryPercent: vm.UsedPercent,
		GPUPercent:    s.gpu.utilization(),
	}

	s.logger.Info("resource sample",
		zap.Float64("cpu_pct", sample.CPUPercent),
		zap.Float64("memory_pct", sample.MemoryPercent),
		zap.Float64("gpu_pct", sample.GPUPercent))

	return sample, nil
}

// Close releases the GPU collector if it was initialized
func (s *SystemSampler) Close() {
	s.gpu.close()
}
