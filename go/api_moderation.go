package bizrecipeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	listinghttpmapper "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/http/mapper"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// ModerationAPI serves community reporting.
type ModerationAPI struct {
	service listingports.ModerationService
}

// NewModerationAPI wires dependencies.
func NewModerationAPI(service listingports.ModerationService) ModerationAPI {
	return ModerationAPI{service: service}
}

// Post /listings/:id/report
// Flag a listing
func (api *ModerationAPI) ReportListing(c *gin.Context) {
	var payload listinghttpmapper.ReportListing
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.Report(c.Request.Context(), listinghttpmapper.ToReportInput(c.Param("id"), payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(updated))
}

// Get /listings/reported
func (api *ModerationAPI) ListReportedListings(c *gin.Context) {
	views, err := api.service.ListReported(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromReportedViews(views))
}

// Put /listings/:id/report/dismiss
// Clear the flag and every report on a listing
func (api *ModerationAPI) DismissReports(c *gin.Context) {
	updated, err := api.service.Dismiss(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(updated))
}
