package stock

import (
	"errors"
	"fmt"
)

// ErrVariantNotFound: varyant yok, soft delete edilmiş ya da başka bir
// kullanıcıya ait. Üç durum da dışarıya aynı şekilde yansır.
var ErrVariantNotFound = errors.New("varyant bulunamadı")

// InsufficientStockError satış sırasında eldeki miktarın yetmediğini bildirir.
type InsufficientStockError struct {
	VariantID   uint
	VariantName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Yetersiz stok: %s (istenen: %d, mevcut: %d)", e.VariantName, e.Requested, e.Available)
}

// NegativeStockError bir alım düzenleme/silme işleminin commit anında stoğu
// eksiye düşüreceğini bildirir; işlem bütünüyle geri alınır.
type NegativeStockError struct {
	VariantID   uint
	VariantName string
	Quantity    int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("Stok negatife düşemez: %s (sonuç: %d)", e.VariantName, e.Quantity)
}
