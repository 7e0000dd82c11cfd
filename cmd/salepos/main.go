package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/config"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/http/handlers"
	applog "github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/log"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/repos"
	"github.com/mahabub-bd/smart-salepos-frontend-sub000/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and answer with a friendly envelope; never leak internals
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for audit logs and authz)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, cfg, authSvc)
	authH := &handlers.AuthHandler{Auth: authSvc, Registry: deps.Registry}

	// Auth (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	api := app.Group("/api/v1", handlers.RequireUser(authSvc))

	// Stock catalog & selection lists
	api.Get("/stock", deps.CatalogHandler.StockList)
	api.Get("/warehouses", deps.CatalogHandler.Warehouses)
	api.Get("/customers", deps.CatalogHandler.CustomerList)
	api.Get("/accounts", deps.CatalogHandler.AccountList)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.AddItem)
	api.Put("/cart/items", deps.CartHandler.SetQuantity)
	api.Delete("/cart/items", deps.CartHandler.RemoveItem)
	api.Put("/cart/adjustments", deps.CartHandler.SetAdjustments)
	api.Delete("/cart", deps.CartHandler.Clear)

	// Checkout & sales
	api.Post("/checkout", deps.CheckoutHandler.Submit)
	api.Get("/sales", deps.SaleHandler.List)
	api.Get("/sales/:id", deps.SaleHandler.Get)

	// Admin
	admin := app.Group("/api/v1/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/stock", deps.AdminHandler.StockList)
	admin.Get("/products", deps.AdminHandler.ProductList)
	admin.Post("/stock", deps.AdminHandler.UpsertStock)
	admin.Get("/sales", deps.AdminHandler.SalesList)
	admin.Post("/sales/:id/status", deps.AdminHandler.UpdateSaleStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
