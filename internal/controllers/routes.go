package controllers

import (
	"github.com/gin-gonic/gin"

	"scooter-rental/internal/middleware"
	"scooter-rental/internal/services"
)

type Handlers struct {
	Accounts *AccountController
	Orders   *OrderController
	Products *ProductController
	Health   *HealthController

	Tokens  *services.TokenService
	Limiter *middleware.RateLimiter
}

// Register mounts the API on r. Code-guessing and login routes are rate
// limited per client IP when a limiter is set.
func Register(r *gin.Engine, h Handlers) {
	auth := middleware.Auth(h.Tokens)
	limit := func(c *gin.Context) { c.Next() }
	if h.Limiter != nil {
		limit = h.Limiter.Handler()
	}

	r.GET("/healthz", h.Health.Health)

	account := r.Group("/api/account")
	{
		account.POST("/signup", h.Accounts.SignUp)
		account.PUT("/verify", limit, h.Accounts.Verify)
		account.POST("/login", limit, h.Accounts.Login)
		account.POST("/reqToChangeForgotPass", limit, h.Accounts.RequestPasswordReset)
		account.PUT("/changeForgotPass", limit, h.Accounts.ConfirmPasswordReset)

		account.GET("/users", auth, h.Accounts.List)
		account.DELETE("/deleteAccount/:id", auth, h.Accounts.Delete)
		account.PUT("/updateAccPassword", auth, h.Accounts.ChangePassword)
		account.PUT("/updateAccount/:id", auth, h.Accounts.Update)
		account.POST("/logout", auth, h.Accounts.Logout)
	}

	orders := r.Group("/api/orders", auth)
	{
		orders.POST("/getOrders", h.Orders.List)
		orders.POST("/createNewOrder", h.Orders.Create)
	}

	products := r.Group("/api/products", auth)
	{
		products.POST("/getAllScooters", h.Products.Nearby)
		products.POST("/addProduct", h.Products.Add)
		products.PUT("/updateProduct/:id", h.Products.Update)
		products.DELETE("/deleteProduct/:id", h.Products.Delete)
	}
}
