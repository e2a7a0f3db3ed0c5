package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, authService AuthService, tokens *TokenService, users UserRepository) *gin.Engine {
	r := gin.Default()

	r.Use(OriginRefererMiddleware(cfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Auth Backend API",
			"endpoints": gin.H{
				"register": "POST /api/register",
				"login":    "POST /api/login",
				"logout":   "POST /api/logout",
				"profile":  "GET /api/profile (protected)",
				"users":    "GET /api/users (protected)",
			},
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/register", func(c *gin.Context) {
			// Fullname is required to be present but may be empty, so it
			// carries no binding rule.
			var req struct {
				Username string `json:"username" binding:"required,min=3,max=30"`
				Email    string `json:"email" binding:"required,email"`
				Password string `json:"password" binding:"required,min=6"`
				Fullname string `json:"fullname"`
				TenantID int64  `json:"tenant_id"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, StatusBadRequest, MsgBadRequest)
				return
			}

			res := authService.Register(c.Request.Context(), RegisterInput{
				Username: req.Username,
				Email:    req.Email,
				Password: req.Password,
				Fullname: req.Fullname,
				TenantID: req.TenantID,
			})
			respondResult(c, res)
		})

		api.POST("/login", func(c *gin.Context) {
			var req struct {
				EmailOrUsername string `json:"emailOrUsername" binding:"required"`
				Password        string `json:"password" binding:"required"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondError(c, StatusBadRequest, MsgBadRequest)
				return
			}

			res := authService.Login(c.Request.Context(), req.EmailOrUsername, req.Password)
			if res.Status == StatusOK {
				if data, ok := res.Data.(loginData); ok {
					setSessionCookie(c, cfg, data.Token, int(tokenTTL/time.Second))
				}
			}
			respondResult(c, res)
		})

		api.POST("/logout", func(c *gin.Context) {
			// Stateless logout: only the client cookie is cleared. An
			// already-issued token stays valid until its natural expiry;
			// this is an accepted limitation, not server-side invalidation.
			setSessionCookie(c, cfg, "", -1)
			respondResult(c, resultOK(MsgLogoutSuccess, nil))
		})

		protected := api.Group("")
		protected.Use(RequireAuth(tokens))

		protected.GET("/profile", func(c *gin.Context) {
			claims, ok := CurrentIdentity(c)
			if !ok {
				respondError(c, StatusUnauthorized, MsgUnauthorized)
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Hello %s!", claims.Fullname)})
		})

		protected.GET("/users", func(c *gin.Context) {
			items, err := users.ListActive(c.Request.Context())
			if err != nil {
				respondError(c, StatusInternalError, MsgInternalError)
				return
			}
			c.JSON(http.StatusOK, items)
		})
	}

	return r
}

// setSessionCookie applies the session cookie attributes: HttpOnly always,
// Secure and SameSite from config (SameSite=None requires Secure when the
// API is served cross-site on a public domain).
func setSessionCookie(c *gin.Context, cfg Config, token string, maxAge int) {
	c.SetSameSite(sameSiteFromString(cfg.CookieSameSite))
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", cfg.CookieSecure, true)
}
