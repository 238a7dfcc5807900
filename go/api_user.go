package bizrecipeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/bizrecipe-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/bizrecipe-api/internal/domains/users/ports"
)

// UserAPI registers the users referenced by listings, orders and reports.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /users
// Create user
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload userhttpmapper.User
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), userhttpmapper.ToDomainUser(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(saved))
}

// Get /users/:id
// Get user by id
func (api *UserAPI) GetUser(c *gin.Context) {
	user, err := api.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}
