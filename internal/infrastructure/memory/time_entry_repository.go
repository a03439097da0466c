package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo implementación en memoria de TimeEntryRepository.
type TimeEntryRepo struct{ s session }

// NewTimeEntryRepository construye el repo sobre el store.
func NewTimeEntryRepository(db *Store) *TimeEntryRepo { return &TimeEntryRepo{s: session{store: db}} }

// withProject copia el registro y completa el nombre del proyecto.
func withProject(st *state, e entity.TimeEntry) *entity.TimeEntry {
	if p, ok := st.projects[e.ProjectID]; ok {
		e.ProjectName = p.Name
	}
	return &e
}

// Create inserta el registro; el proyecto debe existir y ser del owner.
func (r *TimeEntryRepo) Create(ctx context.Context, e *entity.TimeEntry) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.projects[e.ProjectID]
		if !ok || p.OwnerID != e.OwnerID {
			return domain.ErrConflict
		}
		if _, ok := st.entries[e.ID]; ok {
			return domain.ErrDuplicate
		}
		st.entries[e.ID] = *e
		return nil
	})
}

// GetByID retorna nil, nil si no existe o es de otro owner.
func (r *TimeEntryRepo) GetByID(_ context.Context, ownerID, id string) (*entity.TimeEntry, error) {
	var out *entity.TimeEntry
	err := r.s.read(func(st *state) error {
		if e, ok := st.entries[id]; ok && e.OwnerID == ownerID {
			out = withProject(st, e)
		}
		return nil
	})
	return out, err
}

// ListByOwner registros del owner, fecha descendente.
func (r *TimeEntryRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.TimeEntry, error) {
	var out []*entity.TimeEntry
	err := r.s.read(func(st *state) error {
		for _, e := range st.entries {
			if e.OwnerID == ownerID {
				out = append(out, withProject(st, e))
			}
		}
		return nil
	})
	sortEntriesDesc(out)
	return out, err
}

// ListByClient registros de los proyectos asignados al usuario, fecha descendente.
func (r *TimeEntryRepo) ListByClient(_ context.Context, userID string) ([]*entity.TimeEntry, error) {
	var out []*entity.TimeEntry
	err := r.s.read(func(st *state) error {
		assigned := st.assignments[userID]
		for _, e := range st.entries {
			if slices.Contains(assigned, e.ProjectID) {
				out = append(out, withProject(st, e))
			}
		}
		return nil
	})
	sortEntriesDesc(out)
	return out, err
}

// SetPaid cambia el flag paid.
func (r *TimeEntryRepo) SetPaid(ctx context.Context, ownerID, id string, paid bool) error {
	return r.s.write(ctx, func(st *state) error {
		e, ok := st.entries[id]
		if !ok || e.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		e.Paid = paid
		st.entries[id] = e
		return nil
	})
}

// Delete elimina el registro; si está vinculado a una factura retorna ErrConflict.
func (r *TimeEntryRepo) Delete(ctx context.Context, ownerID, id string) error {
	return r.s.write(ctx, func(st *state) error {
		e, ok := st.entries[id]
		if !ok || e.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		if _, linked := st.items[id]; linked {
			return domain.ErrConflict
		}
		delete(st.entries, id)
		return nil
	})
}

// CountByProject número de registros del proyecto.
func (r *TimeEntryRepo) CountByProject(_ context.Context, ownerID, projectID string) (int, error) {
	n := 0
	err := r.s.read(func(st *state) error {
		for _, e := range st.entries {
			if e.OwnerID == ownerID && e.ProjectID == projectID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ListBillable registros facturables en [from, to], fecha ascendente.
func (r *TimeEntryRepo) ListBillable(_ context.Context, ownerID string, projectIDs []string, from, to time.Time) ([]*entity.TimeEntry, error) {
	var out []*entity.TimeEntry
	err := r.s.read(func(st *state) error {
		for _, e := range st.entries {
			if e.OwnerID != ownerID || e.Paid || e.InvoicedAt != nil {
				continue
			}
			if _, linked := st.items[e.ID]; linked {
				continue
			}
			if !slices.Contains(projectIDs, e.ProjectID) {
				continue
			}
			if e.Date.Before(from) || e.Date.After(to) {
				continue
			}
			out = append(out, withProject(st, e))
		}
		return nil
	})
	sortEntriesAsc(out)
	return out, err
}

// MarkInvoiced fija invoiced_at solo en los registros que aún no lo tienen.
func (r *TimeEntryRepo) MarkInvoiced(ctx context.Context, ownerID string, ids []string, at time.Time) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		for _, id := range ids {
			e, ok := st.entries[id]
			if !ok || e.OwnerID != ownerID || e.InvoicedAt != nil {
				continue
			}
			t := at
			e.InvoicedAt = &t
			st.entries[id] = e
			n++
		}
		return nil
	})
	return n, err
}

// MarkPaidByInvoice marca como pagados todos los registros vinculados; devuelve cuántos hay.
func (r *TimeEntryRepo) MarkPaidByInvoice(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		for entryID, invID := range st.items {
			if invID != invoiceID {
				continue
			}
			e, ok := st.entries[entryID]
			if !ok || e.OwnerID != ownerID {
				continue
			}
			e.Paid = true
			st.entries[entryID] = e
			n++
		}
		return nil
	})
	return n, err
}

// LinkedInvoiceStatus estado de la factura vinculada al registro; "" si no está facturado.
func (r *TimeEntryRepo) LinkedInvoiceStatus(_ context.Context, ownerID, id string) (string, error) {
	var status string
	err := r.s.read(func(st *state) error {
		if e, ok := st.entries[id]; !ok || e.OwnerID != ownerID {
			return nil
		}
		if inv, ok := st.invoices[st.items[id]]; ok {
			status = inv.Status
		}
		return nil
	})
	return status, err
}

// ListByInvoice registros vinculados a la factura, fecha ascendente.
func (r *TimeEntryRepo) ListByInvoice(_ context.Context, ownerID, invoiceID string) ([]*entity.TimeEntry, error) {
	var out []*entity.TimeEntry
	err := r.s.read(func(st *state) error {
		for entryID, invID := range st.items {
			if invID != invoiceID {
				continue
			}
			if e, ok := st.entries[entryID]; ok && e.OwnerID == ownerID {
				out = append(out, withProject(st, e))
			}
		}
		return nil
	})
	sortEntriesAsc(out)
	return out, err
}

func compareEntries(a, b *entity.TimeEntry) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

func sortEntriesAsc(list []*entity.TimeEntry) {
	slices.SortFunc(list, compareEntries)
}

func sortEntriesDesc(list []*entity.TimeEntry) {
	slices.SortFunc(list, func(a, b *entity.TimeEntry) int { return compareEntries(b, a) })
}
