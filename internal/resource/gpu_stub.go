//go:build !cuda

package resource

import "go.uber.org/zap"

// gpuCollector is a no-op on builds without NVML support
type gpuCollector struct{}

func newGPUCollector(_ *zap.Logger) *gpuCollector {
	return &gpuCollector{}
}

// utilization always reports "no data" without NVML
func (*gpuCollector) utilization() float64 {
	return -1
}

func (*gpuCollector) close() {}
