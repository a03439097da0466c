package memory

import (
	"context"
	"slices"

	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementación en memoria de PaymentMethodRepository.
type PaymentMethodRepo struct{ s session }

// NewPaymentMethodRepository construye el repo sobre el store.
func NewPaymentMethodRepository(db *Store) *PaymentMethodRepo {
	return &PaymentMethodRepo{s: session{store: db}}
}

// Create inserta el medio de pago.
func (r *PaymentMethodRepo) Create(ctx context.Context, pm *entity.PaymentMethod) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.paymentMethods[pm.ID]; ok {
			return domain.ErrDuplicate
		}
		st.paymentMethods[pm.ID] = *pm
		return nil
	})
}

// Update reemplaza el medio de pago.
func (r *PaymentMethodRepo) Update(ctx context.Context, pm *entity.PaymentMethod) error {
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.paymentMethods[pm.ID]
		if !ok || cur.OwnerID != pm.OwnerID {
			return domain.ErrNotFound
		}
		pm.CreatedAt = cur.CreatedAt
		st.paymentMethods[pm.ID] = *pm
		return nil
	})
}

// GetByID retorna nil, nil si no existe o es de otro owner.
func (r *PaymentMethodRepo) GetByID(_ context.Context, ownerID, id string) (*entity.PaymentMethod, error) {
	var out *entity.PaymentMethod
	err := r.s.read(func(st *state) error {
		if pm, ok := st.paymentMethods[id]; ok && pm.OwnerID == ownerID {
			out = &pm
		}
		return nil
	})
	return out, err
}

// ListActive medios activos: default primero, luego más recientes.
func (r *PaymentMethodRepo) ListActive(_ context.Context, ownerID string) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	err := r.s.read(func(st *state) error {
		for _, pm := range st.paymentMethods {
			if pm.OwnerID == ownerID && pm.IsActive {
				out = append(out, &pm)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b *entity.PaymentMethod) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, err
}

// ClearDefault quita is_default a los demás medios del owner.
func (r *PaymentMethodRepo) ClearDefault(ctx context.Context, ownerID, exceptID string) error {
	return r.s.write(ctx, func(st *state) error {
		for id, pm := range st.paymentMethods {
			if pm.OwnerID == ownerID && id != exceptID && pm.IsDefault {
				pm.IsDefault = false
				st.paymentMethods[id] = pm
			}
		}
		return nil
	})
}

// Deactivate borrado lógico.
func (r *PaymentMethodRepo) Deactivate(ctx context.Context, ownerID, id string) error {
	return r.s.write(ctx, func(st *state) error {
		pm, ok := st.paymentMethods[id]
		if !ok || pm.OwnerID != ownerID {
			return domain.ErrNotFound
		}
		pm.IsActive = false
		pm.IsDefault = false
		st.paymentMethods[id] = pm
		return nil
	})
}
