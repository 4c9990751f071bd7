package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller exposes the sign-up / sign-in / sign-out endpoints.
type Controller struct {
	provider *Provider
	sessions *SessionManager
}

// NewController creates the auth controller.
func NewController(provider *Provider, sessions *SessionManager) *Controller {
	return &Controller{provider: provider, sessions: sessions}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/auth/sign-up", ctrl.SignUp)
	router.POST("/api/auth/sign-in", ctrl.SignIn)
	router.POST("/api/auth/sign-out", ctrl.SignOut)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new account and signs it in. Failures always
// surface the same generic message.
func (ctrl *Controller) SignUp(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not sign up. Please try again."})
		return
	}

	account, err := ctrl.provider.SignUp(req.Email, req.Password)
	if err != nil {
		log.Printf("Sign up error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not sign up. Please try again."})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, account); err != nil {
		log.Printf("Create session error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign up. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": account.ID, "email": account.Email})
}

// SignIn verifies credentials and establishes a session. The error
// message never reveals whether the email exists.
func (ctrl *Controller) SignIn(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	account, err := ctrl.provider.SignInWithPassword(req.Email, req.Password)
	if err != nil {
		log.Printf("Sign in error: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, account); err != nil {
		log.Printf("Create session error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": account.ID, "email": account.Email})
}

// SignOut destroys the current session.
func (ctrl *Controller) SignOut(c *gin.Context) {
	if err := ctrl.sessions.DestroySession(c.Request); err != nil {
		log.Printf("Sign out error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
