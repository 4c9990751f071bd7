package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
	"github.com/mimiru/mimiru/internal/auth"
	"github.com/mimiru/mimiru/internal/entities"
)

type UsersController struct {
	users *actions.Users
}

func NewUsersController(users *actions.Users) *UsersController {
	return &UsersController{users: users}
}

func (controller *UsersController) ListUsers(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		respondResult(c, controller.users.GetUsersByRole(entities.UserRole(role)))
		return
	}
	if c.Query("active") == "true" {
		respondResult(c, controller.users.GetActiveUsers())
		return
	}
	respondResult(c, controller.users.GetUsers())
}

func (controller *UsersController) SearchUsers(c *gin.Context) {
	respondResult(c, controller.users.SearchUsers(c.Query("q")))
}

func (controller *UsersController) GetUser(c *gin.Context) {
	respondResult(c, controller.users.GetUserByID(c.Param("id")))
}

func (controller *UsersController) GetUserByUsername(c *gin.Context) {
	respondResult(c, controller.users.GetUserByUsername(c.Param("username")))
}

// CreateProfile creates the profile for the signed-in account. The
// profile ID always comes from the session, never the request body.
func (controller *UsersController) CreateProfile(c *gin.Context) {
	var input actions.CreateUserProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	input.ID = auth.GetAccountID(c)
	respondResult(c, controller.users.CreateUserProfile(input))
}

func (controller *UsersController) UpdateProfile(c *gin.Context) {
	var input actions.UpdateUserProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.users.UpdateUserProfile(c.Param("id"), input))
}

type updateRoleRequest struct {
	Role entities.UserRole `json:"role" binding:"required"`
}

func (controller *UsersController) UpdateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	respondResult(c, controller.users.UpdateUserRole(c.Param("id"), req.Role))
}

func (controller *UsersController) DeactivateUser(c *gin.Context) {
	respondResult(c, controller.users.DeactivateUser(c.Param("id")))
}
