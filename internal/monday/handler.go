package monday

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docportal-backend/internal/shared/server/respond"
)

// Handler serves the board endpoints. A nil Client means the integration
// is not configured; the routes stay registered and answer 500 so the
// portal UI gets a consistent error shape.
type Handler struct {
	Client *Client
}

// NewHandler constructs a Handler.
func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches board routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/monday/documents/:applicantId", h.missingDocuments)
	rg.GET("/monday/debug", h.debug)
}

func (h *Handler) missingDocuments(c *gin.Context) {
	if h.Client == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Board integration not configured", nil)
		return
	}

	groups, err := h.Client.FetchMissingDocuments(c.Request.Context(), c.Param("applicantId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upstream_error", "Failed to fetch documents from board", nil)
		return
	}

	// Results are ephemeral; clients must re-fetch after every upload.
	c.Header("Cache-Control", "no-store")
	respond.OK(c, groups)
}

func (h *Handler) debug(c *gin.Context) {
	if h.Client == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Board integration not configured", nil)
		return
	}

	report, err := h.Client.Debug(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upstream_error", "Failed to fetch board contents", nil)
		return
	}
	respond.OK(c, report)
}
