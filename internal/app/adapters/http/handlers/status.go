package handlers

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/cpu"
)

// StatusHandler reports process health: cpu load, memory usage,
// goroutine count and whether the session is authorized.
func (h *Handlers) StatusHandler(c *gin.Context) {
	var cpuPercent float64
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		cpuPercent = percents[0]
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"cpu_percent": cpuPercent,
		"alloc_mb":    float64(mem.Alloc) / 1024 / 1024,
		"goroutines":  runtime.NumGoroutine(),
		"authorized":  h.session.Authorized(),
	})
}
