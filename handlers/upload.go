package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobmatchpro/backend/models"
)

// cvFields are the multipart field names accepted for the résumé
var cvFields = []string{"cv", "cv_file"}

var errNoFile = errors.New("no file received")

// readCV reads the uploaded résumé from the first known multipart field
func readCV(c *gin.Context) ([]byte, string, error) {
	for _, field := range cvFields {
		file, header, err := c.Request.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		if header.Filename == "" {
			return nil, "", errNoFile
		}
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}
		return data, header.Filename, nil
	}
	return nil, "", errNoFile
}

func badRequest(c *gin.Context, message, details string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   message,
		Code:    http.StatusBadRequest,
		Details: details,
	})
}
