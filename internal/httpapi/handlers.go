package httpapi

import (
	"errors"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Krishna8167/tempuscache/v2/internal/cache"
	"github.com/Krishna8167/tempuscache/v2/internal/health"
)

// Handlers holds the dependencies every route needs.
type Handlers struct {
	cache   *cache.Cache
	checker *health.Checker
}

// NewHandlers builds a Handlers wrapping the given cache engine.
func NewHandlers(c *cache.Cache, checker *health.Checker) *Handlers {
	return &Handlers{cache: c, checker: checker}
}

// putRequest is the JSON body for POST /put.
type putRequest struct {
	Key        string      `json:"key"`
	Value      interface{} `json:"value"`
	TTLSeconds *int64      `json:"ttl_seconds,omitempty"`
}

// Put handles POST /put.
//
// TTLSeconds is a pointer specifically so "omitted" (nil) and
// "explicitly 0" are distinguishable in the request body, and that
// distinction is carried all the way through to cache.Put's variadic
// ttl parameter: omitted means "use the cache's default TTL", while an
// explicit 0 (or negative) is InvalidTTL, never a silent fallback.
func (h *Handlers) Put(c *fiber.Ctx) error {
	var req putRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_body", "Bad Request", "invalid request body: "+err.Error())
	}

	var err error
	if req.TTLSeconds != nil {
		ttl := time.Duration(*req.TTLSeconds) * time.Second
		err = h.cache.Put(req.Key, req.Value, ttl)
	} else {
		err = h.cache.Put(req.Key, req.Value)
	}
	if err != nil {
		return mapCacheError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// Get handles GET /get?key=....
func (h *Handlers) Get(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return problemResponse(c, fiber.StatusBadRequest,
			"missing_key", "Bad Request", "key query parameter is required")
	}

	value, ok := h.cache.Get(key)
	if !ok {
		return problemResponse(c, fiber.StatusNotFound,
			"not_found", "Not Found", "key not found")
	}

	return c.JSON(fiber.Map{"key": key, "value": value})
}

// Delete handles DELETE /delete?key=....
func (h *Handlers) Delete(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" {
		return problemResponse(c, fiber.StatusBadRequest,
			"missing_key", "Bad Request", "key query parameter is required")
	}

	if err := h.cache.Delete(key); err != nil {
		return mapCacheError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// Clear handles POST /clear.
func (h *Handlers) Clear(c *fiber.Ctx) error {
	h.cache.Clear()
	return c.SendStatus(fiber.StatusOK)
}

// StatsHandler handles GET /stats.
func (h *Handlers) StatsHandler(c *fiber.Ctx) error {
	stats := h.cache.Stats()
	return c.JSON(fiber.Map{
		"hits":             stats.Hits,
		"misses":           stats.Misses,
		"total_requests":   stats.TotalRequests(),
		"evictions":        stats.Evictions,
		"expired_removals": stats.ExpiredRemovals,
		"current_size":     stats.CurrentSize,
		"hit_rate":         math.Round(stats.HitRate()*1000) / 1000,
	})
}

// All handles GET /all, returning every live entry ordered
// most-recently-used first.
func (h *Handlers) All(c *fiber.Ctx) error {
	entries := h.cache.All()
	return c.JSON(entries)
}

// Index serves the minimal static dashboard at GET /.
func (h *Handlers) Index(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(indexHTML)
}

func mapCacheError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, cache.ErrInvalidKey):
		return problemResponse(c, fiber.StatusBadRequest, "invalid_key", "Bad Request", err.Error())
	case errors.Is(err, cache.ErrInvalidTTL):
		return problemResponse(c, fiber.StatusBadRequest, "invalid_ttl", "Bad Request", err.Error())
	case errors.Is(err, cache.ErrNotFound):
		return problemResponse(c, fiber.StatusNotFound, "not_found", "Not Found", err.Error())
	case errors.Is(err, cache.ErrShutdown):
		return problemResponse(c, fiber.StatusServiceUnavailable, "shutdown", "Service Unavailable", err.Error())
	default:
		return err
	}
}
