package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/menubook/menubook-backend/internal/config"
	"github.com/menubook/menubook-backend/internal/handlers"
	"github.com/menubook/menubook-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	familyHandler *handlers.FamilyHandler,
	recipeHandler *handlers.RecipeHandler,
	menuHandler *handlers.MenuHandler,
	menuItemHandler *handlers.MenuItemHandler,
	shareHandler *handlers.ShareHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public share redemption — the share is the authorization, no JWT
	api.Get("/share/:shareId", shareHandler.Redeem)

	// Everything below requires a valid bearer token
	protected := api.Group("", middleware.JWTProtected(cfg))

	families := protected.Group("/families")
	families.Post("/", familyHandler.Create)
	families.Post("/join", familyHandler.Join)
	families.Get("/", familyHandler.List)
	families.Get("/:id/members", familyHandler.Members)

	recipes := protected.Group("/recipes")
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)

	menus := protected.Group("/menus")
	menus.Post("/", menuHandler.Create)
	menus.Get("/", menuHandler.List)
	menus.Get("/:id", menuHandler.Get)
	menus.Put("/:id", menuHandler.Update)
	menus.Delete("/:id", menuHandler.Delete)

	menus.Post("/:id/items", menuItemHandler.Add)
	menus.Put("/:id/items/:itemId", menuItemHandler.Update)
	menus.Delete("/:id/items/:itemId", menuItemHandler.Delete)

	menus.Post("/:id/share", shareHandler.Create)
	menus.Get("/:id/share", shareHandler.List)
	protected.Delete("/share/:shareId", shareHandler.Delete)
}
