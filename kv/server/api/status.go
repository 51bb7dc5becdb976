package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/pingcap/errcode"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/unrolled/render"
)

// Status is the response of GET /status.
type Status struct {
	StoreID     uint64 `json:"store_id"`
	StoreAddr   string `json:"store_addr"`
	Engine      string `json:"engine"`
	RegionCount int    `json:"region_count"`
	LeaderCount int    `json:"leader_count"`
	StartTime   string `json:"start_time"`
	Uptime      string `json:"uptime"`
	GoVersion   string `json:"go_version"`
}

// StoreStats is the response of GET /api/v1/store.
type StoreStats struct {
	StoreID     uint64  `json:"store_id"`
	DBPath      string  `json:"db_path,omitempty"`
	Capacity    uint64  `json:"capacity,omitempty"`
	Available   uint64  `json:"available,omitempty"`
	UsedSize    uint64  `json:"used_size,omitempty"`
	MemTotal    uint64  `json:"mem_total"`
	MemUsed     uint64  `json:"mem_used"`
	MemUsedRate float64 `json:"mem_used_rate"`
	Pending     int     `json:"pending_commands"`
	Applied     uint64  `json:"applied_commands"`
}

type statusHandler struct {
	rs    *regionstore.RegionStorage
	conf  *config.Config
	rd    *render.Render
	start time.Time
}

func newStatusHandler(rs *regionstore.RegionStorage, conf *config.Config, rd *render.Render, start time.Time) *statusHandler {
	return &statusHandler{rs: rs, conf: conf, rd: rd, start: start}
}

func (h *statusHandler) Status(w http.ResponseWriter, r *http.Request) {
	regions := h.rs.Regions()
	status := &Status{
		StoreID:     h.rs.StoreID(),
		StoreAddr:   h.conf.StoreAddr,
		Engine:      h.conf.Engine,
		RegionCount: len(regions),
		StartTime:   h.start.Format(time.RFC3339),
		Uptime:      time.Since(h.start).Round(time.Second).String(),
		GoVersion:   runtime.Version(),
	}
	for _, info := range regions {
		if info.Leader != nil && info.Leader.StoreId == status.StoreID {
			status.LeaderCount++
		}
	}
	h.rd.JSON(w, http.StatusOK, status)
}

func (h *statusHandler) Store(w http.ResponseWriter, r *http.Request) {
	stats := &StoreStats{StoreID: h.rs.StoreID()}
	for _, info := range h.rs.Regions() {
		stats.Pending += info.Pending
		stats.Applied += info.Applied
	}
	if h.conf.Engine != config.EngineMem && h.conf.DBPath != "" {
		usage, err := disk.Usage(h.conf.DBPath)
		if err != nil {
			errorResp(h.rd, w, errcode.NewInternalErr(err))
			return
		}
		stats.DBPath = h.conf.DBPath
		stats.Capacity = usage.Total
		stats.Available = usage.Free
		stats.UsedSize = usage.Used
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		errorResp(h.rd, w, errcode.NewInternalErr(err))
		return
	}
	stats.MemTotal = vm.Total
	stats.MemUsed = vm.Used
	stats.MemUsedRate = vm.UsedPercent
	h.rd.JSON(w, http.StatusOK, stats)
}
