package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sondeo-backend/internal/service"
)

type ExportController struct {
	ExportService service.ExportService
}

func NewExportController(exportService service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// ExportResult handles GET /responses/:id/export, streaming the PDF report
// as a download. Accepts the numeric result id or its public uuid.
func (ec *ExportController) ExportResult(c *gin.Context) {
	resultID, err := ec.ExportService.ResolveResultID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}

	owner, err := ec.ExportService.ResultOwner(resultID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
		return
	}
	if owner != authenticatedUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot export another user's result"})
		return
	}

	filename, content, err := ec.ExportService.ExportResultPDF(resultID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", content)
}
