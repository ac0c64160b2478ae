package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-balloon-watch/internal/config"
	"github.com/mr1hm/go-balloon-watch/internal/geo"
	"github.com/mr1hm/go-balloon-watch/internal/models"
	"github.com/mr1hm/go-balloon-watch/internal/repository"
)

type Handler struct {
	positions   repository.PositionRepository
	advisories  repository.AdvisoryRepository
	maxResults  int
	focusWindow time.Duration
	clock       clockwork.Clock
}

func NewHandler(positions repository.PositionRepository, advisories repository.AdvisoryRepository, display config.DisplayConfig, clock clockwork.Clock) *Handler {
	return &Handler{
		positions:   positions,
		advisories:  advisories,
		maxResults:  display.MaxResults,
		focusWindow: display.FocusWindow,
		clock:       clock,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/positions", h.getPositions)
	r.GET("/api/advisories", h.getAdvisories)
	r.GET("/api/advisories/:id/focus", h.getFocus)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) getPositions(c *gin.Context) {
	// The display cap is applied here, after the merge, so it can never
	// bias which hour's observation the deduplicator kept.
	filter := repository.Filter{
		Limit: h.maxResults,
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 1000 {
			filter.Limit = lim
		}
	}

	positions, err := h.positions.ListPositions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch positions",
		})
		return
	}

	fc := toGeoJSON(positions)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

type advisoryResponse struct {
	ID          string       `json:"id"`
	Event       string       `json:"event,omitempty"`
	Headline    string       `json:"headline,omitempty"`
	Description string       `json:"description,omitempty"`
	AreaDesc    string       `json:"area_desc,omitempty"`
	Severity    string       `json:"severity"`
	Urgency     string       `json:"urgency"`
	Tier        models.Tier  `json:"tier"`
	Color       string       `json:"color"`
	Onset       *time.Time   `json:"onset,omitempty"`
	Expires     *time.Time   `json:"expires,omitempty"`
	Geometry    geo.Geometry `json:"geometry"`
}

func (h *Handler) getAdvisories(c *gin.Context) {
	filter := repository.Filter{}
	if t := c.Query("tier"); t != "" {
		tier := models.Tier(t)
		filter.Tier = &tier
	}
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			filter.Limit = lim
		}
	}

	advisories, err := h.advisories.ListAdvisories(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch advisories",
		})
		return
	}

	out := make([]advisoryResponse, 0, len(advisories))
	for _, a := range advisories {
		resp := advisoryResponse{
			ID:          a.ID,
			Event:       a.Event,
			Headline:    a.Headline,
			Description: a.Description,
			AreaDesc:    a.AreaDesc,
			Severity:    a.Severity,
			Urgency:     a.Urgency,
			Tier:        a.Tier,
			Color:       a.Color,
			Geometry:    a.Geometry,
		}
		if !a.Onset.IsZero() {
			onset := a.Onset
			resp.Onset = &onset
		}
		if !a.Expires.IsZero() {
			expires := a.Expires
			resp.Expires = &expires
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"advisories": out})
}

// getFocus computes a fly-to target for one advisory. The target carries
// an expiry: selection is transient and the renderer drops the highlight
// once the window passes.
func (h *Handler) getFocus(c *gin.Context) {
	id := c.Param("id")

	advisory, err := h.advisories.GetAdvisory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to fetch advisory",
		})
		return
	}
	if advisory == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "advisory not found",
		})
		return
	}

	target, ok := geo.Focus(advisory.Geometry)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no navigation target for advisory geometry",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"advisory_id": advisory.ID,
		"target":      target,
		"expires_at":  h.clock.Now().Add(h.focusWindow),
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
