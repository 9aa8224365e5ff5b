package sale

import (
	"errors"

	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func mapServiceError(err error) error {
	var insufficient *stock.InsufficientStockError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, stock.ErrVariantNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyItems), errors.Is(err, ErrBadQuantity), errors.Is(err, ErrBadPrice):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

// POST /api/sales
func CreateSaleHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body Input
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		s, err := Create(db, userID, body)
		if err != nil {
			return mapServiceError(err)
		}

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// GET /api/sales
func ListSalesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		sales, err := List(db, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		return c.JSON(sales)
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış ID")
		}

		if err := Delete(db, userID, uint(id)); err != nil {
			return mapServiceError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
