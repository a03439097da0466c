package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/money"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DefaultStripeFeePercentage comisión de Stripe si no se indica otra.
var DefaultStripeFeePercentage = decimal.NewFromInt(6)

// PaymentMethodUseCase CRUD de medios de pago con un único default por owner.
type PaymentMethodUseCase struct {
	txRunner PaymentMethodTxRunner
	pmRepo   repository.PaymentMethodRepository
}

// NewPaymentMethodUseCase construye el caso de uso.
func NewPaymentMethodUseCase(txRunner PaymentMethodTxRunner, pmRepo repository.PaymentMethodRepository) *PaymentMethodUseCase {
	return &PaymentMethodUseCase{txRunner: txRunner, pmRepo: pmRepo}
}

// Create valida las reglas del tipo y guarda el medio; si es default desmarca los demás.
func (uc *PaymentMethodUseCase) Create(ctx context.Context, ownerID string, in dto.CreatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	now := time.Now().UTC()
	f := in.PaymentMethodFields
	pm := &entity.PaymentMethod{
		ID:                       uuid.New().String(),
		OwnerID:                  ownerID,
		Name:                     strings.TrimSpace(f.Name),
		Type:                     strings.ToLower(strings.TrimSpace(f.Type)),
		Currency:                 strings.ToUpper(strings.TrimSpace(f.Currency)),
		PixKey:                   strings.TrimSpace(f.PixKey),
		PixKeyType:               strings.TrimSpace(f.PixKeyType),
		BeneficiaryName:          strings.TrimSpace(f.BeneficiaryName),
		BeneficiaryAccountNumber: strings.TrimSpace(f.BeneficiaryAccountNumber),
		SwiftCode:                strings.ToUpper(strings.TrimSpace(f.SwiftCode)),
		BankName:                 strings.TrimSpace(f.BankName),
		BankAddress:              strings.TrimSpace(f.BankAddress),
		IntermediarySwiftCode:    strings.ToUpper(strings.TrimSpace(f.IntermediarySwiftCode)),
		IntermediaryBankName:     strings.TrimSpace(f.IntermediaryBankName),
		IntermediaryBankAddress:  strings.TrimSpace(f.IntermediaryBankAddress),
		IntermediaryAccount:      strings.TrimSpace(f.IntermediaryAccount),
		EntityType:               strings.TrimSpace(f.EntityType),
		EntityName:               strings.TrimSpace(f.EntityName),
		EntityTaxID:              strings.TrimSpace(f.EntityTaxID),
		PaypalEmail:              strings.TrimSpace(f.PaypalEmail),
		PaypalFeePercentage:      lo.FromPtrOr(f.PaypalFeePercentage, decimal.Zero),
		StripeEmail:              strings.TrimSpace(f.StripeEmail),
		StripeFeePercentage:      lo.FromPtrOr(f.StripeFeePercentage, DefaultStripeFeePercentage),
		IsDefault:                f.IsDefault,
		IsActive:                 true,
		Notes:                    strings.TrimSpace(f.Notes),
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if pm.Currency == "" {
		pm.Currency = requiredCurrency(pm.Type)
	}
	if err := ValidatePaymentMethod(pm); err != nil {
		return nil, err
	}

	err := uc.txRunner.RunPaymentMethods(ctx, func(pmRepo repository.PaymentMethodRepository) error {
		if pm.IsDefault {
			if err := pmRepo.ClearDefault(ctx, ownerID, pm.ID); err != nil {
				return err
			}
		}
		return pmRepo.Create(ctx, pm)
	})
	if err != nil {
		return nil, err
	}
	out := toPaymentMethodResponse(pm)
	return &out, nil
}

// List medios activos: default primero.
func (uc *PaymentMethodUseCase) List(ctx context.Context, ownerID string) ([]dto.PaymentMethodResponse, error) {
	list, err := uc.pmRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listar medios de pago: %w", err)
	}
	return lo.Map(list, func(pm *entity.PaymentMethod, _ int) dto.PaymentMethodResponse {
		return toPaymentMethodResponse(pm)
	}), nil
}

// Get medio de pago activo del owner.
func (uc *PaymentMethodUseCase) Get(ctx context.Context, ownerID, id string) (*dto.PaymentMethodResponse, error) {
	pm, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	out := toPaymentMethodResponse(pm)
	return &out, nil
}

// Update aplica los campos presentes y revalida las reglas del tipo.
func (uc *PaymentMethodUseCase) Update(ctx context.Context, ownerID, id string, in dto.UpdatePaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	pm, err := uc.load(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	setString(&pm.Name, in.Name)
	setString(&pm.PixKey, in.PixKey)
	setString(&pm.PixKeyType, in.PixKeyType)
	setString(&pm.BeneficiaryName, in.BeneficiaryName)
	setString(&pm.BeneficiaryAccountNumber, in.BeneficiaryAccountNumber)
	setString(&pm.SwiftCode, in.SwiftCode)
	setString(&pm.BankName, in.BankName)
	setString(&pm.BankAddress, in.BankAddress)
	setString(&pm.IntermediarySwiftCode, in.IntermediarySwiftCode)
	setString(&pm.IntermediaryBankName, in.IntermediaryBankName)
	setString(&pm.IntermediaryBankAddress, in.IntermediaryBankAddress)
	setString(&pm.IntermediaryAccount, in.IntermediaryAccount)
	setString(&pm.EntityType, in.EntityType)
	setString(&pm.EntityName, in.EntityName)
	setString(&pm.EntityTaxID, in.EntityTaxID)
	setString(&pm.PaypalEmail, in.PaypalEmail)
	setString(&pm.StripeEmail, in.StripeEmail)
	setString(&pm.Notes, in.Notes)
	if in.Currency.Set {
		pm.Currency = strings.ToUpper(strings.TrimSpace(in.Currency.Value))
	}
	if in.PaypalFeePercentage.Set && !in.PaypalFeePercentage.Null {
		pm.PaypalFeePercentage = in.PaypalFeePercentage.Value
	}
	if in.StripeFeePercentage.Set && !in.StripeFeePercentage.Null {
		pm.StripeFeePercentage = in.StripeFeePercentage.Value
	}
	if in.IsDefault.Set && !in.IsDefault.Null {
		pm.IsDefault = in.IsDefault.Value
	}
	if err := ValidatePaymentMethod(pm); err != nil {
		return nil, err
	}
	pm.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.RunPaymentMethods(ctx, func(pmRepo repository.PaymentMethodRepository) error {
		if pm.IsDefault {
			if err := pmRepo.ClearDefault(ctx, ownerID, pm.ID); err != nil {
				return err
			}
		}
		return pmRepo.Update(ctx, pm)
	})
	if err != nil {
		return nil, err
	}
	out := toPaymentMethodResponse(pm)
	return &out, nil
}

// Delete borrado lógico; las facturas que lo referencian lo siguen mostrando.
func (uc *PaymentMethodUseCase) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uc.load(ctx, ownerID, id); err != nil {
		return err
	}
	return uc.pmRepo.Deactivate(ctx, ownerID, id)
}

func (uc *PaymentMethodUseCase) load(ctx context.Context, ownerID, id string) (*entity.PaymentMethod, error) {
	pm, err := uc.pmRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("obtener medio de pago: %w", err)
	}
	if pm == nil || !pm.IsActive {
		return nil, domain.ErrNotFound
	}
	return pm, nil
}

// ValidatePaymentMethod reglas por tipo:
// pix (BRL, clave), international (USD, beneficiario, cuenta, SWIFT, banco),
// paypal (USD, email), stripe (USD, email).
func ValidatePaymentMethod(pm *entity.PaymentMethod) error {
	if pm.Name == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	want := requiredCurrency(pm.Type)
	if want == "" {
		return fmt.Errorf("%w: tipo %q desconocido (pix, international, paypal, stripe)", domain.ErrInvalidInput, pm.Type)
	}
	if pm.Currency != want {
		return fmt.Errorf("%w: un medio %s debe usar %s", domain.ErrInvalidInput, pm.Type, want)
	}

	var missing []string
	require := func(field, value string) {
		if value == "" {
			missing = append(missing, field)
		}
	}
	switch pm.Type {
	case entity.PaymentTypePix:
		require("pix_key", pm.PixKey)
	case entity.PaymentTypeInternational:
		require("beneficiary_name", pm.BeneficiaryName)
		require("beneficiary_account_number", pm.BeneficiaryAccountNumber)
		require("swift_code", pm.SwiftCode)
		require("bank_name", pm.BankName)
	case entity.PaymentTypePaypal:
		require("paypal_email", pm.PaypalEmail)
	case entity.PaymentTypeStripe:
		require("stripe_email", pm.StripeEmail)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: campos obligatorios: %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	hundred := decimal.NewFromInt(100)
	for _, fee := range []decimal.Decimal{pm.PaypalFeePercentage, pm.StripeFeePercentage} {
		if fee.IsNegative() || fee.GreaterThan(hundred) {
			return fmt.Errorf("%w: la comisión debe estar entre 0 y 100", domain.ErrInvalidInput)
		}
		if !money.FitsScale(fee) {
			return fmt.Errorf("%w: la comisión admite como máximo %d decimales", domain.ErrInvalidInput, money.Scale)
		}
	}
	return nil
}

func requiredCurrency(paymentType string) string {
	switch paymentType {
	case entity.PaymentTypePix:
		return "BRL"
	case entity.PaymentTypeInternational, entity.PaymentTypePaypal, entity.PaymentTypeStripe:
		return "USD"
	}
	return ""
}

func setString(dst *string, o dto.Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = ""
		return
	}
	*dst = strings.TrimSpace(o.Value)
}
