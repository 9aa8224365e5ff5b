package purchase

import (
	"errors"

	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// mapServiceError servis hatalarını HTTP karşılıklarına çevirir. Bilinmeyen
// hatalar olduğu gibi döner; merkezi error handler loglayıp genel 500 üretir.
func mapServiceError(err error) error {
	var insufficient *stock.InsufficientStockError
	var negative *stock.NegativeStockError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, stock.ErrVariantNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyItems), errors.Is(err, ErrBadQuantity),
		errors.Is(err, ErrBadCost), errors.Is(err, ErrBadShipping):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient), errors.As(err, &negative):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

func purchaseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz alım ID")
	}
	return uint(id), nil
}

// POST /api/purchases
func CreatePurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body Input
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

// GET /api/purchases
func ListPurchasesHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		purchases, err := List(db, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Alımlar listelenemedi")
		}

		return c.JSON(purchases)
	}
}

// GET /api/purchases/:id
func GetPurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := purchaseID(c)
		if err != nil {
			return err
		}

		p, err := Get(db, userID, id)
		if err != nil {
			return mapServiceError(err)
		}

		return c.JSON(p)
	}
}

// PUT /api/purchases/:id
func UpdatePurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := purchaseID(c)
		if err != nil {
			return err
		}

		var body Input
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

// DELETE /api/purchases/:id
func DeletePurchaseHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := purchaseID(c)
		if err != nil {
			return err
		}

		if err := Delete(db, userID, id); err != nil {
			return mapServiceError(err)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
