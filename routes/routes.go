package routes

import (
	"github.com/asharbutt0314/foodexpress/config"
	"github.com/asharbutt0314/foodexpress/handlers"
	"github.com/asharbutt0314/foodexpress/middleware"
	"github.com/asharbutt0314/foodexpress/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// Static uploads (product and restaurant images)
	r.Static("/uploads", config.UploadDir)

	// ── Diner auth ─────────────────────────────────────────────────
	registerAuthRoutes(r.Group("/auth"), models.KindDiner)

	// ── Restaurant-owner auth ──────────────────────────────────────
	clientAuth := r.Group("/clientauth")
	registerAuthRoutes(clientAuth, models.KindRestaurant)
	clientAuth.GET("/restaurants", handlers.ListRestaurants)

	// ── Catalog & cart ─────────────────────────────────────────────
	products := r.Group("/products")
	{
		products.GET("/", handlers.ListProducts)
		products.GET("/client/:clientId", handlers.GetClientProducts)
		products.GET("/getproduct/:id", handlers.GetProduct)
		products.POST("/addproduct", handlers.AddProduct)
		products.PUT("/editproduct/:id", handlers.EditProduct)
		products.DELETE("/deleteproduct/:id", handlers.DeleteProduct)
		products.POST("/reconcile", middleware.AuthRequired(), handlers.ReconcileProducts)

		products.POST("/cart/add", handlers.AddToCart)
		products.GET("/cart", handlers.ViewCart)
		products.GET("/cart/restaurant", handlers.GetCartRestaurant)
		products.DELETE("/cart/remove", handlers.RemoveFromCart)
		products.DELETE("/cart/clear", handlers.ClearCart)
	}

	// ── Orders ─────────────────────────────────────────────────────
	orders := r.Group("/orders")
	{
		orders.POST("/create", handlers.CreateOrder)
		orders.GET("/user/:userId", handlers.GetUserOrders)
		orders.GET("/user/:userId/count", handlers.GetUserOrderCount)
		orders.GET("/all", handlers.GetAllOrders)
		orders.GET("/client/:clientId", handlers.GetClientOrders)
		orders.GET("/client/:clientId/count", handlers.GetClientOrderCount)
		orders.GET("/details/:orderId", handlers.GetOrderDetails)
		orders.GET("/status/:orderId", handlers.GetOrderStatus)
		orders.PUT("/update/:orderId", handlers.UpdateOrderStatus)
		orders.POST("/test-email", handlers.TestEmail)
	}

	// ── Images ─────────────────────────────────────────────────────
	images := r.Group("/images")
	{
		images.GET("/", handlers.ListImages)
		images.GET("/:filename", handlers.GetImage)
	}
}

// registerAuthRoutes wires the shared account handlers for one kind.
func registerAuthRoutes(g *gin.RouterGroup, kind models.AccountKind) {
	g.POST("/signup", handlers.Signup(kind))
	g.POST("/login", handlers.Login(kind))
	g.POST("/logout", handlers.Logout)
	g.POST("/send-otp", handlers.SendOtp(kind))
	g.POST("/verify-otp", handlers.VerifyOtp(kind))
	g.POST("/signup-otp-verify", handlers.SignupOtpVerify(kind))
	g.POST("/resend-otp", handlers.ResendOtp(kind))
	g.POST("/reset-password", handlers.ResetPassword(kind))
	g.PUT("/update-profile", handlers.UpdateProfile(kind))
	g.GET("/users", handlers.ListAccounts(kind))
}
