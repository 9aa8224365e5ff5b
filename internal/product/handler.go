package product

import (
	"errors"

	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, stock.ErrVariantNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrBadPrice):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ID")
	}
	return uint(id), nil
}

// GET /api/products
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		products, err := List(db, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		return c.JSON(products)
	}
}

// POST /api/products
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		p, err := Create(db, userID, body)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/products/:productId
func UpdateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := paramID(c, "productId")
		if err != nil {
			return err
		}

		var body UpdateInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		p, err := Update(db, userID, id, body)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(p)
	}
}

// DELETE /api/products/:productId
func DeleteProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := paramID(c, "productId")
		if err != nil {
			return err
		}

		if err := Delete(db, userID, id); err != nil {
			return mapServiceError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/products/:productId/variants
func AddVariantHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := paramID(c, "productId")
		if err != nil {
			return err
		}

		var body VariantInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		v, err := AddVariant(db, userID, id, body)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

// PUT /api/products/variants/:variantId
func UpdateVariantHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := paramID(c, "variantId")
		if err != nil {
			return err
		}

		var body UpdateVariantInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		v, err := UpdateVariant(db, userID, id, body)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(v)
	}
}

// DELETE /api/products/variants/:variantId
func DeleteVariantHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := paramID(c, "variantId")
		if err != nil {
			return err
		}

		if err := DeleteVariant(db, userID, id); err != nil {
			return mapServiceError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
