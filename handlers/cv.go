package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/agent"
	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/utils"
)

// CVHandler handles résumé analysis requests
type CVHandler struct {
	agent  *agent.JobAgent
	logger *zap.Logger
}

// NewCVHandler creates a new CV handler
func NewCVHandler(jobAgent *agent.JobAgent, logger *zap.Logger) *CVHandler {
	return &CVHandler{
		agent:  jobAgent,
		logger: logger.With(zap.String("handler", "cv")),
	}
}

// ParseCV derives the profile and search queries of a résumé
// @Summary Parse CV
// @Description Build the keyword profile and search queries of a résumé without searching any source
// @Tags CV
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body models.ProfileRequest false "Résumé text (JSON)"
// @Param cv formData file false "Résumé file (field cv or cv_file)"
// @Success 200 {object} models.ProfileResponse "Derived profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Router /api/parse-cv [post]
func (h *CVHandler) ParseCV(c *gin.Context) {
	var input agent.MatchInput

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		data, filename, err := readCV(c)
		if err != nil {
			if text := c.PostForm("cv_text"); text != "" {
				input.CVText = text
			} else {
				badRequest(c, "CV text or file is required", err.Error())
				return
			}
		}
		input.CVFileData, input.CVFileName = data, filename
	} else {
		var req models.ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body", err.Error())
			return
		}
		input.CVText = req.CVText
	}

	output, err := h.agent.Analyze(input)
	if err != nil {
		var docErr *utils.DocumentError
		if errors.As(err, &docErr) || errors.Is(err, agent.ErrDocumentTooShort) {
			badRequest(c, "could not read document", err.Error())
			return
		}
		h.logger.Error("parse failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "CV parsing failed",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Profile: output.Profile,
		Queries: output.Queries,
	})
}
