package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
)

var _ repository.PaymentMethodRepository = (*PaymentMethodRepo)(nil)

// PaymentMethodRepo implementación de PaymentMethodRepository (usable con pool o tx).
type PaymentMethodRepo struct {
	q Querier
}

// NewPaymentMethodRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentMethodRepository(q Querier) *PaymentMethodRepo {
	return &PaymentMethodRepo{q: q}
}

const paymentMethodColumns = `id, owner_id, name, type, currency,
	pix_key, pix_key_type,
	beneficiary_name, beneficiary_account_number, swift_code, bank_name, bank_address,
	intermediary_swift_code, intermediary_bank_name, intermediary_bank_address, intermediary_account_number,
	entity_type, entity_name, entity_tax_id,
	paypal_email, paypal_fee_percentage, stripe_email, stripe_fee_percentage,
	is_default, is_active, notes, created_at, updated_at`

func paymentMethodArgs(pm *entity.PaymentMethod) []any {
	return []any{
		pm.ID, pm.OwnerID, pm.Name, pm.Type, pm.Currency,
		nullIfEmpty(pm.PixKey), nullIfEmpty(pm.PixKeyType),
		nullIfEmpty(pm.BeneficiaryName), nullIfEmpty(pm.BeneficiaryAccountNumber), nullIfEmpty(pm.SwiftCode),
		nullIfEmpty(pm.BankName), nullIfEmpty(pm.BankAddress),
		nullIfEmpty(pm.IntermediarySwiftCode), nullIfEmpty(pm.IntermediaryBankName),
		nullIfEmpty(pm.IntermediaryBankAddress), nullIfEmpty(pm.IntermediaryAccount),
		nullIfEmpty(pm.EntityType), nullIfEmpty(pm.EntityName), nullIfEmpty(pm.EntityTaxID),
		nullIfEmpty(pm.PaypalEmail), pm.PaypalFeePercentage, nullIfEmpty(pm.StripeEmail), pm.StripeFeePercentage,
		pm.IsDefault, pm.IsActive, nullIfEmpty(pm.Notes), pm.CreatedAt, pm.UpdatedAt,
	}
}

func scanPaymentMethod(row pgx.Row) (*entity.PaymentMethod, error) {
	var pm entity.PaymentMethod
	var pixKey, pixKeyType, benName, benAccount, swift, bankName, bankAddress *string
	var intSwift, intBankName, intBankAddress, intAccount *string
	var entityType, entityName, entityTaxID, paypalEmail, stripeEmail, notes *string
	err := row.Scan(
		&pm.ID, &pm.OwnerID, &pm.Name, &pm.Type, &pm.Currency,
		&pixKey, &pixKeyType,
		&benName, &benAccount, &swift, &bankName, &bankAddress,
		&intSwift, &intBankName, &intBankAddress, &intAccount,
		&entityType, &entityName, &entityTaxID,
		&paypalEmail, &pm.PaypalFeePercentage, &stripeEmail, &pm.StripeFeePercentage,
		&pm.IsDefault, &pm.IsActive, &notes, &pm.CreatedAt, &pm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	pm.PixKey, pm.PixKeyType = derefStr(pixKey), derefStr(pixKeyType)
	pm.BeneficiaryName, pm.BeneficiaryAccountNumber = derefStr(benName), derefStr(benAccount)
	pm.SwiftCode, pm.BankName, pm.BankAddress = derefStr(swift), derefStr(bankName), derefStr(bankAddress)
	pm.IntermediarySwiftCode, pm.IntermediaryBankName = derefStr(intSwift), derefStr(intBankName)
	pm.IntermediaryBankAddress, pm.IntermediaryAccount = derefStr(intBankAddress), derefStr(intAccount)
	pm.EntityType, pm.EntityName, pm.EntityTaxID = derefStr(entityType), derefStr(entityName), derefStr(entityTaxID)
	pm.PaypalEmail, pm.StripeEmail, pm.Notes = derefStr(paypalEmail), derefStr(stripeEmail), derefStr(notes)
	return &pm, nil
}

// Create persiste un medio de pago.
func (r *PaymentMethodRepo) Create(ctx context.Context, pm *entity.PaymentMethod) error {
	query := `INSERT INTO payment_methods (` + paymentMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	if _, err := r.q.Exec(ctx, query, paymentMethodArgs(pm)...); err != nil {
		return writeError("insert payment method", err)
	}
	return nil
}

// Update reemplaza todos los campos editables.
func (r *PaymentMethodRepo) Update(ctx context.Context, pm *entity.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $3, type = $4, currency = $5,
		    pix_key = $6, pix_key_type = $7,
		    beneficiary_name = $8, beneficiary_account_number = $9, swift_code = $10,
		    bank_name = $11, bank_address = $12,
		    intermediary_swift_code = $13, intermediary_bank_name = $14,
		    intermediary_bank_address = $15, intermediary_account_number = $16,
		    entity_type = $17, entity_name = $18, entity_tax_id = $19,
		    paypal_email = $20, paypal_fee_percentage = $21, stripe_email = $22, stripe_fee_percentage = $23,
		    is_default = $24, is_active = $25, notes = $26, updated_at = $27
		WHERE id = $1 AND owner_id = $2`
	args := paymentMethodArgs(pm)
	args = append(args[:26], args[27]) // sin created_at
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return writeError("update payment method", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID medio del owner, activo o no.
func (r *PaymentMethodRepo) GetByID(ctx context.Context, ownerID, id string) (*entity.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods WHERE id = $1 AND owner_id = $2`
	pm, err := scanPaymentMethod(r.q.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	return pm, nil
}

// ListActive medios activos: default primero, luego más recientes.
func (r *PaymentMethodRepo) ListActive(ctx context.Context, ownerID string) ([]*entity.PaymentMethod, error) {
	query := `SELECT ` + paymentMethodColumns + ` FROM payment_methods
		WHERE owner_id = $1 AND is_active
		ORDER BY is_default DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentMethod
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment method: %w", err)
		}
		list = append(list, pm)
	}
	return list, rows.Err()
}

// ClearDefault quita is_default a los demás medios del owner.
func (r *PaymentMethodRepo) ClearDefault(ctx context.Context, ownerID, exceptID string) error {
	_, err := r.q.Exec(ctx, `
		UPDATE payment_methods SET is_default = FALSE
		WHERE owner_id = $1 AND id <> $2 AND is_default`, ownerID, exceptID)
	if err != nil {
		return fmt.Errorf("clear default payment method: %w", err)
	}
	return nil
}

// Deactivate borrado lógico.
func (r *PaymentMethodRepo) Deactivate(ctx context.Context, ownerID, id string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payment_methods SET is_active = FALSE, is_default = FALSE, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deactivate payment method: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
