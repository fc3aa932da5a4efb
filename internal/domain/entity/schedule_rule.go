package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleRule define la fracción de "día de trabajo" esperada para un día de
// la semana en un negocio. Weekday usa la convención de time.Weekday
// (0 = domingo), que coincide con la semana laboral local.
type ScheduleRule struct {
	BusinessID string
	Weekday    time.Weekday
	// DayFactor fracción en [0,1]: 1 = día completo, 0.5 = medio día, 0 = cerrado.
	DayFactor decimal.Decimal
}
