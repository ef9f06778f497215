package monitoring

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthCheckFunc func(ctx context.Context) error

// StatsFunc reports point-in-time counters of a dependency, such as pool
// usage or breaker state. It must not block.
type StatsFunc func() map[string]interface{}

type HealthCheck struct {
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	LastRun time.Time `json:"last_run"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker runs the registered dependency checks on demand. Each check
// gets its own timeout.
type HealthChecker struct {
	mu        sync.RWMutex
	checks    map[string]HealthCheckFunc
	stats     map[string]StatsFunc
	timeout   time.Duration
	startTime time.Time
}

func NewHealthChecker(timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthChecker{
		checks:    make(map[string]HealthCheckFunc),
		stats:     make(map[string]StatsFunc),
		timeout:   timeout,
		startTime: time.Now(),
	}
}

func (h *HealthChecker) Register(name string, check HealthCheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

// RegisterStats adds a section to the /health payload under "stats".
func (h *HealthChecker) RegisterStats(name string, fn StatsFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats[name] = fn
}

// Stats collects every registered stats section.
func (h *HealthChecker) Stats() map[string]map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]map[string]interface{}, len(h.stats))
	for name, fn := range h.stats {
		out[name] = fn()
	}
	return out
}

// Run executes every check concurrently and returns the results sorted by
// name, plus whether all of them passed.
func (h *HealthChecker) Run(ctx context.Context) ([]HealthCheck, bool) {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	funcs := make([]HealthCheckFunc, 0, len(h.checks))
	for name, fn := range h.checks {
		names = append(names, name)
		funcs = append(funcs, fn)
	}
	h.mu.RUnlock()

	results := make([]HealthCheck, len(names))
	var wg sync.WaitGroup
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
			defer cancel()

			result := HealthCheck{Name: names[i], Status: StatusHealthy, LastRun: time.Now()}
			if err := funcs[i](checkCtx); err != nil {
				result.Status = StatusUnhealthy
				result.Message = err.Error()
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	sort.Slice(results, func(a, b int) bool { return results[a].Name < results[b].Name })

	healthy := true
	for _, r := range results {
		if r.Status != StatusHealthy {
			healthy = false
		}
	}
	return results, healthy
}

func (h *HealthChecker) HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks, healthy := h.Run(c.Request.Context())

		status := http.StatusOK
		overall := StatusHealthy
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = StatusUnhealthy
		}

		c.JSON(status, gin.H{
			"status":    overall,
			"timestamp": time.Now().UTC(),
			"checks":    checks,
			"uptime":    time.Since(h.startTime).String(),
			"stats":     h.Stats(),
		})
	}
}

func (h *HealthChecker) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, healthy := h.Run(c.Request.Context()); !healthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "timestamp": time.Now().UTC()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "timestamp": time.Now().UTC()})
	}
}

// LivenessHandler only reports that the process is serving requests.
func (h *HealthChecker) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive", "timestamp": time.Now().UTC()})
	}
}
