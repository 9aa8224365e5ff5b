package dashboard

import (
	"time"

	"stoktakip-backend/internal/auth"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportResponse struct {
	TotalSales     decimal.Decimal `json:"totalSales"`
	TotalPurchases decimal.Decimal `json:"totalPurchases"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// GET /api/dashboard/report?startDate=...&endDate=...
// Dönem içindeki canlı satış ve alım toplamlarını döner; soft delete edilmiş
// kayıtlar toplamlara girmez.
func ReportHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		start, err := parseDate(c.Query("startDate"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "startDate zorunludur ve ISO formatında olmalıdır")
		}
		end, err := parseDate(c.Query("endDate"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "endDate zorunludur ve ISO formatında olmalıdır")
		}

		var totalSales decimal.Decimal
		err = db.Model(&models.Sale{}).
			Where("user_id = ? AND sale_date BETWEEN ? AND ?", userID, start, end).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSales).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}

		var totalPurchases decimal.Decimal
		err = db.Model(&models.Purchase{}).
			Where("user_id = ? AND purchase_date BETWEEN ? AND ?", userID, start, end).
			Select("COALESCE(SUM(total_cost), 0)").
			Scan(&totalPurchases).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}

		return c.JSON(ReportResponse{
			TotalSales:     totalSales,
			TotalPurchases: totalPurchases,
		})
	}
}
