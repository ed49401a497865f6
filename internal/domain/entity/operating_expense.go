package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperatingExpense es un gasto operativo (arriendo, sueldos, servicios) usado en el estado de resultados.
type OperatingExpense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}
