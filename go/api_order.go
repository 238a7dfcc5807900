package bizrecipeserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	listinghttpmapper "github.com/Apurer/bizrecipe-api/internal/domains/listings/adapters/http/mapper"
	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	listingports "github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// IdempotencyKeyHeader lets clients retry order submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI serves the order lifecycle endpoints. Submissions go through the
// workflow orchestrator; everything else calls the service directly.
type OrderAPI struct {
	service   listingports.OrderService
	workflows listingports.WorkflowOrchestrator
}

// NewOrderAPI wires dependencies.
func NewOrderAPI(service listingports.OrderService, workflows listingports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /listings/:id/orders
// Place an order against a listing
func (api *OrderAPI) SubmitOrder(c *gin.Context) {
	var payload listinghttpmapper.SubmitOrder
	if !bindJSON(c, &payload) {
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	input := listinghttpmapper.ToSubmitInput(c.Param("id"), key, payload)
	var (
		view *listingtypes.OrderView
		err  error
	)
	if api.workflows != nil {
		view, err = api.workflows.SubmitOrder(c.Request.Context(), input)
	} else {
		view, err = api.service.SubmitOrder(c.Request.Context(), input)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromOrderView(*view))
}

// Get /orders
// List active orders across every listing
func (api *OrderAPI) ListActiveOrders(c *gin.Context) {
	views, err := api.service.ListActiveOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromOrderViews(views))
}

// Post /orders/update
// Advance an order to a new status
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	var payload listinghttpmapper.UpdateOrder
	if !bindJSON(c, &payload) {
		return
	}
	view, err := api.service.UpdateOrder(c.Request.Context(), listinghttpmapper.ToUpdateOrderInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromOrderView(*view))
}

// Get /orders/history
// List completed orders across every listing
func (api *OrderAPI) ListOrderHistory(c *gin.Context) {
	views, err := api.service.ListOrderHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listinghttpmapper.FromOrderViews(views))
}
