package http

import "eltranslit/internal/core/version"

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"eltranslit-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T09:05:00Z"`
}

// Check states reported by ReadyCheck
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
)

// ReadyCheck is the outcome of one dependency check
type ReadyCheck struct {
	Name   string `json:"name"            example:"sqlite"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"database is locked"`
}

// ReadyResponse is ok when no check failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// ServiceResponse reports the process name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"eltranslit-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// RegistryResponse reports the loaded language registry
type RegistryResponse struct {
	Version   int               `json:"version"   example:"1"`
	Languages []string          `json:"languages" example:"el,lo,ru,th"`
	Tables    int               `json:"tables"    example:"8"`
	Build     version.BuildInfo `json:"build"`
}
