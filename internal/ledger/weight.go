package ledger

import (
	"github.com/shopspring/decimal"

	"stock-backend/internal/models"
)

// NetWeight subtracts the tare of count containers from gross. A nil
// container means none or unknown, and gross is returned as is. The result
// is rounded to 2 decimals and may be negative.
func NetWeight(gross float64, container *models.Container, count int) float64 {
	if container == nil {
		return gross
	}
	tare := decimal.NewFromFloat(container.Weight).Mul(decimal.NewFromInt(int64(count)))
	net, _ := decimal.NewFromFloat(gross).Sub(tare).Round(2).Float64()
	return net
}
