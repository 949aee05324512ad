// Package server exposes the simulator over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookiefied/processscheduler/scheduler"
)

// API holds the engine options applied to every request.
type API struct {
	opts []scheduler.SetOption
}

func NewAPI(setOpts ...scheduler.SetOption) *API {
	return &API{opts: setOpts}
}

// New returns a gin engine with the simulator routes installed.
func New(api *API) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	AddApis(r, api)
	return r
}

// Add simulator apis to the gin router object
func AddApis(r *gin.Engine, api *API) {
	r.GET("/healthz", api.HealthHandler)
	r.GET("/policies", api.PoliciesHandler)
	r.POST("/simulate", api.SimulateHandler)
	r.POST("/compare", api.CompareHandler)
}

func (api *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type policyInfo struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Preemptive bool   `json:"preemptive"`
	Priority   bool   `json:"needs_priority"`
	Quantum    bool   `json:"needs_quantum"`
}

func (api *API) PoliciesHandler(c *gin.Context) {
	var out []policyInfo
	for _, p := range scheduler.Policies() {
		out = append(out, policyInfo{
			Name:       p.String(),
			Title:      p.Title(),
			Preemptive: p.Preemptive(),
			Priority:   p.NeedsPriority(),
			Quantum:    p.NeedsQuantum(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"policies": out})
}

func (api *API) SimulateHandler(c *gin.Context) {
	var req scheduler.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res, err := req.Simulate(api.opts...)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (api *API) CompareHandler(c *gin.Context) {
	var req scheduler.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	results, err := req.Compare(api.opts...)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func statusFor(err error) int {
	if errors.Is(err, scheduler.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abort(c *gin.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		log.Printf("[server] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
