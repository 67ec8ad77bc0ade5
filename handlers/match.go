package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/agent"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/utils"
)

// MatchHandler handles résumé matching requests
type MatchHandler struct {
	agent          *agent.JobAgent
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(jobAgent *agent.JobAgent, maxUploadBytes int64, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{
		agent:          jobAgent,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(zap.String("handler", "match")),
	}
}

// Match analyzes an uploaded résumé and returns ranked listings
// @Summary Match a résumé against job listings
// @Description Upload a résumé (PDF, DOCX or text). The response is the ranked list of listings gathered from every enabled source; an unreachable source only reduces the list.
// @Tags Jobs
// @Accept multipart/form-data
// @Produce json
// @Param cv formData file true "Résumé file (field cv or cv_file)"
// @Param only_paid query bool false "Keep listings with salary information only"
// @Param recent_minutes query int false "Accepted for compatibility, not applied"
// @Success 200 {array} models.Listing "Ranked listings"
// @Failure 400 {object} models.ErrorResponse "Missing or unreadable résumé"
// @Router /api/match [post]
func (h *MatchHandler) Match(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	data, filename, err := readCV(c)
	if err != nil {
		badRequest(c, "no file received", err.Error())
		return
	}

	onlyPaid, err := boolParam(c, "only_paid")
	if err != nil {
		badRequest(c, "invalid only_paid", err.Error())
		return
	}
	recentMinutes, err := intParam(c, "recent_minutes")
	if err != nil {
		badRequest(c, "invalid recent_minutes", err.Error())
		return
	}

	h.logger.Info("match request",
		zap.String("request_id", RequestID(c)),
		zap.String("file", filename),
		zap.Int("size", len(data)))

	output, err := h.agent.Match(c.Request.Context(), agent.MatchInput{
		CVFileData:    data,
		CVFileName:    filename,
		OnlyPaid:      onlyPaid,
		RecentMinutes: recentMinutes,
	})
	if err != nil {
		h.handleAgentError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Results)
}

// handleAgentError maps document problems to client errors
func (h *MatchHandler) handleAgentError(c *gin.Context, err error) {
	var docErr *utils.DocumentError
	switch {
	case errors.As(err, &docErr):
		badRequest(c, "could not read document", docErr.Error())
	case errors.Is(err, agent.ErrDocumentTooShort):
		badRequest(c, "could not read document", err.Error())
	default:
		h.logger.Error("match failed", zap.String("request_id", RequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Job matching failed",
			Code:  http.StatusInternalServerError,
		})
	}
}

// boolParam reads a boolean from the query string or the form
func boolParam(c *gin.Context, name string) (bool, error) {
	raw := param(c, name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// intParam reads an integer from the query string or the form
func intParam(c *gin.Context, name string) (int, error) {
	raw := param(c, name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func param(c *gin.Context, name string) string {
	if v, ok := c.GetQuery(name); ok {
		return v
	}
	return c.PostForm(name)
}
