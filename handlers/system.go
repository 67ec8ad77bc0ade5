package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobmatchpro/backend/agent"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/tools"
)

// SystemHandler serves health and discovery endpoints
type SystemHandler struct {
	agent   *agent.JobAgent
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(jobAgent *agent.JobAgent, version string) *SystemHandler {
	return &SystemHandler{agent: jobAgent, version: version}
}

// ToolsResponse lists the tools and sources available to agents
type ToolsResponse struct {
	Tools   []tools.Definition `json:"tools"`
	Sources []string           `json:"sources"`
}

// HealthCheck returns server health status
// @Summary Health check
// @Description Check if the server is running and healthy
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse "Server is healthy"
// @Router /health [get]
func (h *SystemHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetTools returns available MCP tools
// @Summary List available tools
// @Description Get the MCP tools exposing each pipeline stage and the enabled sources
// @Tags Tools
// @Produce json
// @Success 200 {object} ToolsResponse "List of tools"
// @Router /api/tools [get]
func (h *SystemHandler) GetTools(c *gin.Context) {
	c.JSON(http.StatusOK, ToolsResponse{
		Tools:   h.agent.GetToolDefinitions(),
		Sources: h.agent.Sources(),
	})
}
