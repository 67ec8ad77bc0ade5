package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobmatchpro/backend/models"
	"github.com/jobmatchpro/backend/outreach"
)

// ContactHandler drafts outreach emails
type ContactHandler struct {
	logger *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(logger *zap.Logger) *ContactHandler {
	return &ContactHandler{logger: logger.With(zap.String("handler", "contact"))}
}

// ContactHR drafts an email to the recruiter of a listing
// @Summary Draft an email to HR
// @Description Fill the outreach template. When hr_email is empty the address is derived from the company name. No email is sent.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Listing and candidate details"
// @Success 200 {object} models.ContactResponse "Drafted email"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Router /api/contact-hr [post]
func (h *ContactHandler) ContactHR(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := outreach.Draft(req)
	if err != nil {
		h.logger.Error("draft failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to draft email",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	h.logger.Debug("email drafted", zap.String("request_id", RequestID(c)), zap.String("to", resp.To))
	c.JSON(http.StatusOK, resp)
}
