package invoicing

import (
	"fmt"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
)

// transitions tabla de transiciones de estado permitidas.
// paid y cancelled son terminales; repetir el estado actual no es una transición.
var transitions = map[string][]string{
	entity.InvoiceStatusDraft: {entity.InvoiceStatusSent, entity.InvoiceStatusCancelled, entity.InvoiceStatusPaid},
	entity.InvoiceStatusSent:  {entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled},
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled:
		return true
	}
	return false
}

// ValidInitialStatus estados con los que puede nacer una factura.
func ValidInitialStatus(s string) bool {
	return s == entity.InvoiceStatusDraft || s == entity.InvoiceStatusSent
}

// CheckTransition valida el cambio de estado from -> to.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, to)
	}
	if from == to {
		return nil
	}
	if from == entity.InvoiceStatusPaid {
		return fmt.Errorf("%w: la factura ya está pagada", domain.ErrImmutableInvoice)
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidState, from, to)
}
