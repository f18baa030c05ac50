package controllers

import (
	"context"
	"net/http"
	"strings"

	"story-production-api/application/ports/outbound"
	"story-production-api/infrastructure/gin_interface/dto"
	"story-production-api/middleware"

	"github.com/gin-gonic/gin"
)

type AuthController interface {
	SignIn(c *gin.Context)
	SignUp(c *gin.Context)
	SignOut(c *gin.Context)
	CurrentIdentity(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type authController struct {
	logger   outbound.LoggerPort
	identity outbound.IdentityPort
}

func NewAuthController(logger outbound.LoggerPort, identity outbound.IdentityPort) AuthController {
	return &authController{
		logger:   logger,
		identity: identity,
	}
}

func (a *authController) SignIn(c *gin.Context) {
	a.handleCredentials(c, a.identity.SignIn)
}

func (a *authController) SignUp(c *gin.Context) {
	a.handleCredentials(c, a.identity.SignUp)
}

func (a *authController) handleCredentials(c *gin.Context, call func(ctx context.Context, email string, password string) (*outbound.Session, error)) {
	var req dto.CredentialsRequest
	newCtx, cancel := context.WithCancel(c)
	defer cancel()
	if err := c.ShouldBindJSON(&req); err != nil {
		err = c.AbortWithError(400, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	session, err := call(newCtx, req.Email, req.Password)
	if err != nil {
		a.logger.Error(err, "identity provider rejected credentials")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (a *authController) SignOut(c *gin.Context) {
	newCtx, cancel := context.WithCancel(c)
	defer cancel()

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "authorization header is required"})
		return
	}

	if err := a.identity.SignOut(newCtx, token); err != nil {
		a.logger.Error(err, "failed to sign out")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}

	c.Status(http.StatusNoContent)
}

// CurrentIdentity reflects the identity the auth middleware resolved from
// the bearer token.
func (a *authController) CurrentIdentity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userId": c.GetString(middleware.ContextUserIDKey),
		"email":  c.GetString(middleware.ContextEmailKey),
	})
}

func (a *authController) RegisterRoutes(g *gin.Engine) {
	g.POST("/auth/signin", a.SignIn)
	g.POST("/auth/signup", a.SignUp)
	g.POST("/auth/signout", a.SignOut)
	g.GET("/auth/me", a.CurrentIdentity)
}
