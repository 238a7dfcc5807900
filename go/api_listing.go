package bizrecipeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	listinghttpmapper "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/http/mapper"
	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// ListingAPI serves the catalog endpoints.
type ListingAPI struct {
	service listingports.ListingService
}

// NewListingAPI wires dependencies.
func NewListingAPI(service listingports.ListingService) ListingAPI {
	return ListingAPI{service: service}
}

// Get /listings
// List every listing with the owner's display name
func (api *ListingAPI) ListListings(c *gin.Context) {
	views, err := api.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromViews(views))
}

// Get /listings/:id
// Get a listing with owner and buyer names resolved
func (api *ListingAPI) GetListing(c *gin.Context) {
	view, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromView(view))
}

// Post /listings
// Publish a listing
func (api *ListingAPI) CreateListing(c *gin.Context) {
	var payload listinghttpmapper.CreateListing
	if !bindJSON(c, &payload) {
		return
	}
	created, err := api.service.Create(c.Request.Context(), listinghttpmapper.ToCreateInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(created))
}

// Put /listings/:id
// Merge the mutable fields in the body over the listing
func (api *ListingAPI) UpdateListing(c *gin.Context) {
	var payload listinghttpmapper.ListingPatch
	if !decodeStrict(c, &payload) {
		return
	}
	updated, err := api.service.Update(c.Request.Context(), listingtypes.UpdateListingInput{
		ID:    c.Param("id"),
		Patch: listinghttpmapper.ToDomainPatch(payload),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromProjection(updated))
}

// Delete /listings/:id
// Delete a listing together with its orders and reports
func (api *ListingAPI) DeleteListing(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}
