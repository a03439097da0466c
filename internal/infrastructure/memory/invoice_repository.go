package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación en memoria de InvoiceRepository.
type InvoiceRepo struct{ s session }

// NewInvoiceRepository construye el repo sobre el store.
func NewInvoiceRepository(db *Store) *InvoiceRepo { return &InvoiceRepo{s: session{store: db}} }

func copyInvoice(st *state, inv entity.Invoice) *entity.Invoice {
	if inv.DueDate != nil {
		d := *inv.DueDate
		inv.DueDate = &d
	}
	inv.ItemsCount = 0
	for _, invID := range st.items {
		if invID == inv.ID {
			inv.ItemsCount++
		}
	}
	return &inv
}

// LockOwner no hace nada: los escritores ya están serializados en el store.
func (r *InvoiceRepo) LockOwner(context.Context, string) error { return nil }

// Create inserta la cabecera; el número es único por owner.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range st.invoices {
			if other.OwnerID == inv.OwnerID && other.Number == inv.Number {
				return domain.ErrConflict
			}
		}
		st.seq++
		st.invoices[inv.ID] = *inv
		st.invoiceSeq[inv.ID] = st.seq
		return nil
	})
}

// CreateItems vincula registros; un registro ya vinculado retorna ErrConflict.
func (r *InvoiceRepo) CreateItems(ctx context.Context, invoiceID string, timeEntryIDs []string) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.invoices[invoiceID]; !ok {
			return domain.ErrNotFound
		}
		for _, id := range timeEntryIDs {
			if _, linked := st.items[id]; linked {
				return domain.ErrConflict
			}
			if _, ok := st.entries[id]; !ok {
				return domain.ErrConflict
			}
			st.items[id] = invoiceID
		}
		return nil
	})
}

// GetByID retorna nil, nil si no existe o es de otro owner.
func (r *InvoiceRepo) GetByID(_ context.Context, ownerID, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.read(func(st *state) error {
		if inv, ok := st.invoices[id]; ok && inv.OwnerID == ownerID {
			out = copyInvoice(st, inv)
		}
		return nil
	})
	return out, err
}

// ListByOwner facturas del owner, la última creada primero.
func (r *InvoiceRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Invoice, error) {
	var (
		out  []*entity.Invoice
		seqs = map[string]int64{}
	)
	err := r.s.read(func(st *state) error {
		for id, inv := range st.invoices {
			if inv.OwnerID == ownerID {
				out = append(out, copyInvoice(st, inv))
				seqs[id] = st.invoiceSeq[id]
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Invoice) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(seqs[b.ID] - seqs[a.ID])
	})
	return out, err
}

// LastNumber número de la última factura creada por el owner.
func (r *InvoiceRepo) LastNumber(_ context.Context, ownerID string) (string, error) {
	var (
		last    string
		lastSeq int64 = -1
	)
	err := r.s.read(func(st *state) error {
		for id, inv := range st.invoices {
			if inv.OwnerID == ownerID && st.invoiceSeq[id] > lastSeq {
				lastSeq = st.invoiceSeq[id]
				last = inv.Number
			}
		}
		return nil
	})
	return last, err
}

// Update reemplaza los campos mutables de la factura.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok || cur.OwnerID != inv.OwnerID {
			return domain.ErrNotFound
		}
		cur.Status = inv.Status
		cur.Notes = inv.Notes
		cur.IssueDate = inv.IssueDate
		cur.DueDate = inv.DueDate
		cur.PaymentMethodID = inv.PaymentMethodID
		cur.PaymentLink = inv.PaymentLink
		cur.UpdatedAt = inv.UpdatedAt
		st.invoices[inv.ID] = cur
		return nil
	})
}

// Delete elimina la factura y sus items (los registros conservan invoiced_at).
func (r *InvoiceRepo) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.write(ctx, func(st *state) error {
		inv, ok := st.invoices[id]
		if !ok || inv.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		delete(st.invoices, id)
		delete(st.invoiceSeq, id)
		for entryID, invID := range st.items {
			if invID == id {
				delete(st.items, entryID)
			}
		}
		return nil
	})
}
