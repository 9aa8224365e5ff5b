package main

import (
	"log"
	"strings"

	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/dashboard"
	"stoktakip-backend/internal/product"
	"stoktakip-backend/internal/purchase"
	"stoktakip-backend/internal/sale"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// newApp uygulamayı route'larıyla birlikte kurar. DB bağlantısı parametre
// olarak gelir; testler sqlite ile aynı uygulamayı ayağa kaldırır.
func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Ürünler ve varyantlar
	protected.Get("/products", product.ListProductsHandler(db))
	protected.Post("/products", product.CreateProductHandler(db))
	protected.Put("/products/:productId", product.UpdateProductHandler(db))
	protected.Delete("/products/:productId", product.DeleteProductHandler(db))
	protected.Post("/products/:productId/variants", product.AddVariantHandler(db))
	protected.Put("/products/variants/:variantId", product.UpdateVariantHandler(db))
	protected.Delete("/products/variants/:variantId", product.DeleteVariantHandler(db))

	// Alımlar
	protected.Get("/purchases", purchase.ListPurchasesHandler(db))
	protected.Post("/purchases", purchase.CreatePurchaseHandler(db))
	protected.Get("/purchases/:id", purchase.GetPurchaseHandler(db))
	protected.Put("/purchases/:id", purchase.UpdatePurchaseHandler(db))
	protected.Delete("/purchases/:id", purchase.DeletePurchaseHandler(db))

	// Satışlar
	protected.Get("/sales", sale.ListSalesHandler(db))
	protected.Post("/sales", sale.CreateSaleHandler(db))
	protected.Delete("/sales/:id", sale.DeleteSaleHandler(db))

	// Dashboard
	protected.Get("/dashboard/report", dashboard.ReportHandler(db))

	return app
}
