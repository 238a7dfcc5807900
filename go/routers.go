package bizrecipeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions bundles the handler groups mounted by NewRouter.
type ApiHandleFunctions struct {
	ListingAPI    ListingAPI
	OrderAPI      OrderAPI
	ModerationAPI ModerationAPI
	UserAPI       UserAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},

		{"ListListings", http.MethodGet, "/listings", handleFunctions.ListingAPI.ListListings},
		{"CreateListing", http.MethodPost, "/listings", handleFunctions.ListingAPI.CreateListing},
		{"ListReportedListings", http.MethodGet, "/listings/reported", handleFunctions.ModerationAPI.ListReportedListings},
		{"GetListing", http.MethodGet, "/listings/:id", handleFunctions.ListingAPI.GetListing},
		{"UpdateListing", http.MethodPut, "/listings/:id", handleFunctions.ListingAPI.UpdateListing},
		{"DeleteListing", http.MethodDelete, "/listings/:id", handleFunctions.ListingAPI.DeleteListing},

		{"ReportListing", http.MethodPost, "/listings/:id/report", handleFunctions.ModerationAPI.ReportListing},
		{"DismissReports", http.MethodPut, "/listings/:id/report/dismiss", handleFunctions.ModerationAPI.DismissReports},

		{"SubmitOrder", http.MethodPost, "/listings/:id/orders", handleFunctions.OrderAPI.SubmitOrder},
		{"ListActiveOrders", http.MethodGet, "/orders", handleFunctions.OrderAPI.ListActiveOrders},
		{"UpdateOrder", http.MethodPost, "/orders/update", handleFunctions.OrderAPI.UpdateOrder},
		{"ListOrderHistory", http.MethodGet, "/orders/history", handleFunctions.OrderAPI.ListOrderHistory},

		{"CreateUser", http.MethodPost, "/users", handleFunctions.UserAPI.CreateUser},
		{"GetUser", http.MethodGet, "/users/:id", handleFunctions.UserAPI.GetUser},
	}
}
