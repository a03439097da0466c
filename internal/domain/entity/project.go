package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project agrupa el trabajo facturable para un cliente, con su tarifa vigente.
type Project struct {
	ID         string
	OwnerID    string
	Name       string
	HourlyRate decimal.Decimal // tarifa actual; los registros guardan su propia copia
	Currency   string          // ISO 4217
	Activities []string        // etiquetas permitidas para los registros (vacío = libre)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AllowsActivity indica si la actividad es válida para el proyecto.
func (p *Project) AllowsActivity(activity string) bool {
	if len(p.Activities) == 0 {
		return true
	}
	for _, a := range p.Activities {
		if a == activity {
			return true
		}
	}
	return false
}
