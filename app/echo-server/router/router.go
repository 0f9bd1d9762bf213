package router

import (
	"linkFlame/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired, adminOnly, selfOrAdmin echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.PUT("/:id", handler.UpdateUser, authRequired, selfOrAdmin)
	users.GET("", handler.GetAllUsers, authRequired, adminOnly)
	users.GET("/:id", handler.GetUserByID, authRequired, selfOrAdmin)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.ListProducts)
	products.GET("/:id", handler.GetProductByID)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
}

func SetupCartRoutes(api *echo.Group, handler *rest.CartHandler, authRequired echo.MiddlewareFunc) {
	cart := api.Group("/cart", authRequired)

	cart.GET("", handler.GetCart)
	cart.POST("/items", handler.AddItem)
	cart.PUT("/items/:productId", handler.UpdateQuantity)
	cart.DELETE("/items/:productId", handler.RemoveItem)
	cart.DELETE("", handler.ClearCart)
}

func SetupWishlistRoutes(api *echo.Group, handler *rest.WishlistHandler, authRequired echo.MiddlewareFunc) {
	wishlist := api.Group("/wishlist", authRequired)

	wishlist.GET("", handler.List)
	wishlist.POST("/:productId", handler.Add)
	wishlist.DELETE("/:productId", handler.Remove)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)

	orders.GET("", handler.GetMyOrders)
	orders.GET("/:id", handler.GetOrder)
}

func SetupBillingRoutes(api *echo.Group, handler *rest.BillingHandler, authRequired, adminOnly echo.MiddlewareFunc) {
	billing := api.Group("/billing")

	billing.POST("/checkout", handler.Checkout, authRequired)
	billing.POST("/portal", handler.Portal, authRequired)
	billing.GET("/usage", handler.Usage, authRequired)
	billing.GET("/events", handler.ListEvents, authRequired, adminOnly)
}

func SetupWebhookRoutes(api *echo.Group, handler *rest.WebhookHandler) {
	webhook := api.Group("/webhook")
	webhook.POST("/stripe", handler.HandleStripeWebhook)
}

func SetupReferralRoutes(api *echo.Group, handler *rest.ReferralHandler, authRequired echo.MiddlewareFunc) {
	referrals := api.Group("/referrals")

	// public so the signup form can check a code first
	referrals.GET("/validate", handler.ValidateCode)

	referrals.POST("", handler.CreateCode, authRequired)
	referrals.GET("", handler.ListMine, authRequired)
}

func SetupLoyaltyRoutes(api *echo.Group, handler *rest.LoyaltyHandler, authRequired echo.MiddlewareFunc) {
	loyalty := api.Group("/loyalty", authRequired)

	loyalty.GET("/balance", handler.Balance)
	loyalty.GET("/history", handler.History)
}

func SetupQuizRoutes(api *echo.Group, handler *rest.QuizHandler, authRequired echo.MiddlewareFunc) {
	quiz := api.Group("/quiz", authRequired)

	quiz.POST("/recommendations", handler.Recommend)
	quiz.GET("/latest", handler.Latest)
}

func SetupImpactRoutes(api *echo.Group, handler *rest.ImpactHandler, authRequired echo.MiddlewareFunc) {
	impact := api.Group("/impact", authRequired)

	impact.GET("/summary", handler.Summary)
}
