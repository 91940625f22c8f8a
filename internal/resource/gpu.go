//go:build cuda

package resource

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"go.uber.org/zap"
)

// nvmlInterface is the subset of NVML operations the collector needs,
// extracted for mocking.
type nvmlInterface interface {
	Init() nvml.Return
	Shutdown() nvml.Return
	DeviceGetCount() (int, nvml.Return)
	DeviceGetHandleByIndex(index int) (nvmlDevice, nvml.Return)
}

// nvmlDevice is the per-device operation subset
type nvmlDevice interface {
	GetUtilizationRates() (nvml.Utilization, nvml.Return)
}

type realNVML struct{}

func (realNVML) Init() nvml.Return     { return nvml.Init() }
func (realNVML) Shutdown() nvml.Return { return nvml.Shutdown() }

func (realNVML) DeviceGetCount() (int, nvml.Return) {
	return nvml.DeviceGetCount()
}

func (realNVML) DeviceGetHandleByIndex(index int) (nvmlDevice, nvml.Return) {
	device, ret := nvml.DeviceGetHandleByIndex(index)
	if ret != nvml.SUCCESS {
		return nil, ret
	}
	return deviceWrapper{device}, ret
}

type deviceWrapper struct {
	device nvml.Device
}

func (w deviceWrapper) GetUtilizationRates() (nvml.Utilization, nvml.Return) {
	return w.device.GetUtilizationRates()
}

// gpuCollector reads GPU utilization from the first NVML device. All
// failures degrade to "no data"; a missing or broken GPU must never fail a
// resource sample.
type gpuCollector struct {
	logger      *zap.Logger
	nvml        nvmlInterface
	device      nvmlDevice
	initialized bool
	attempted   bool
}

func newGPUCollector(logger *zap.Logger) *gpuCollector {
	return &gpuCollector{
		logger: logger,
		nvml:   realNVML{},
	}
}

// utilization returns the current GPU utilization percentage, or -1 when
// unavailable
func (g *gpuCollector) utilization() float64 {
	if !g.attempted {
		g.attempted = true
		g.initialize()
	}
	if !g.initialized {
		return -1
	}

	util, ret := g.device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		g.logger.Debug("gpu utilization query failed",
			zap.String("error", nvml.ErrorString(ret)))
		return -1
	}

	return float64(util.Gpu)
}

func (g *gpuCollector) initialize() {
	ret := g.nvml.Init()
	if ret != nvml.SUCCESS {
		g.logger.Debug("nvml unavailable, gpu sampling disabled",
			zap.String("error", nvml.ErrorString(ret)))
		return
	}

	count, ret := g.nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		g.logger.Debug("no gpu devices found", zap.Int("count", count))
		g.shutdown()
		return
	}

	device, ret := g.nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		g.logger.Debug("gpu device handle unavailable",
			zap.String("error", nvml.ErrorString(ret)))
		g.shutdown()
		return
	}

	g.device = device
	g.initialized = true
	g.logger.Info("gpu sampling enabled", zap.Int("devices", count))
}

func (g *gpuCollector) shutdown() {
	if ret := g.nvml.Shutdown(); ret != nvml.SUCCESS {
		g.logger.Debug("nvml shutdown failed",
			zap.String("error", nvml.ErrorString(ret)))
	}
}

func (g *gpuCollector) close() {
	if g.initialized {
		g.initialized = false
		g.shutdown()
	}
}
