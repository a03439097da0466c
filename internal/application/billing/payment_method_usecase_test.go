package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
)

func newPaymentMethodUC() *billing.PaymentMethodUseCase {
	db := memory.NewStore()
	return billing.NewPaymentMethodUseCase(memory.NewTxRunner(db), memory.NewPaymentMethodRepository(db))
}

func pixRequest(name string, isDefault bool) dto.CreatePaymentMethodRequest {
	return dto.CreatePaymentMethodRequest{PaymentMethodFields: dto.PaymentMethodFields{
		Name: name, Type: "pix", PixKey: "chave@pix.com", IsDefault: isDefault,
	}}
}

func TestPaymentMethod_UnSoloDefault(t *testing.T) {
	uc := newPaymentMethodUC()
	ctx := context.Background()

	first, err := uc.Create(ctx, ownerA, pixRequest("PIX 1", true))
	require.NoError(t, err)
	assert.Equal(t, "BRL", first.Currency, "pix usa BRL por defecto")

	second, err := uc.Create(ctx, ownerA, pixRequest("PIX 2", true))
	require.NoError(t, err)

	list, err := uc.List(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "el default va primero")
	assert.True(t, list[0].IsDefault)
	assert.False(t, list[1].IsDefault)

	// Volver a marcar el primero
	_, err = uc.Update(ctx, ownerA, first.ID, dto.UpdatePaymentMethodRequest{IsDefault: dto.Some(true)})
	require.NoError(t, err)
	list, err = uc.List(ctx, ownerA)
	require.NoError(t, err)
	defaults := 0
	for _, pm := range list {
		if pm.IsDefault {
			defaults++
			assert.Equal(t, first.ID, pm.ID)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestPaymentMethod_DefaultPorOwner(t *testing.T) {
	uc := newPaymentMethodUC()
	ctx := context.Background()

	a, err := uc.Create(ctx, ownerA, pixRequest("A", true))
	require.NoError(t, err)
	_, err = uc.Create(ctx, ownerB, pixRequest("B", true))
	require.NoError(t, err)

	got, err := uc.Get(ctx, ownerA, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault, "el default de otro owner no lo desmarca")
}

func TestPaymentMethod_ReglasPorTipo(t *testing.T) {
	uc := newPaymentMethodUC()
	ctx := context.Background()

	cases := map[string]dto.PaymentMethodFields{
		"sin nombre":              {Type: "pix", PixKey: "k"},
		"tipo desconocido":        {Name: "x", Type: "cheque"},
		"pix sin clave":           {Name: "x", Type: "pix"},
		"pix en USD":              {Name: "x", Type: "pix", PixKey: "k", Currency: "USD"},
		"international sin swift": {Name: "x", Type: "international", BeneficiaryName: "b", BeneficiaryAccountNumber: "1", BankName: "bank"},
		"paypal sin email":        {Name: "x", Type: "paypal"},
		"stripe en BRL":           {Name: "x", Type: "stripe", StripeEmail: "s@x.com", Currency: "BRL"},
	}
	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, ownerA, dto.CreatePaymentMethodRequest{PaymentMethodFields: fields})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	fee := decimal.NewFromInt(150)
	_, err := uc.Create(ctx, ownerA, dto.CreatePaymentMethodRequest{PaymentMethodFields: dto.PaymentMethodFields{
		Name: "PayPal", Type: "paypal", PaypalEmail: "p@x.com", PaypalFeePercentage: &fee,
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	precise := decimal.RequireFromString("4.999")
	_, err = uc.Create(ctx, ownerA, dto.CreatePaymentMethodRequest{PaymentMethodFields: dto.PaymentMethodFields{
		Name: "PayPal", Type: "paypal", PaypalEmail: "p@x.com", PaypalFeePercentage: &precise,
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "la comisión admite dos decimales")
}

func TestPaymentMethod_ComisionStripePorDefecto(t *testing.T) {
	uc := newPaymentMethodUC()

	pm, err := uc.Create(context.Background(), ownerA, dto.CreatePaymentMethodRequest{PaymentMethodFields: dto.PaymentMethodFields{
		Name: "Stripe", Type: entity.PaymentTypeStripe, StripeEmail: "s@x.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, "USD", pm.Currency)
	require.NotNil(t, pm.StripeFeePercentage)
	assert.True(t, pm.StripeFeePercentage.Equal(billing.DefaultStripeFeePercentage))
}

func TestPaymentMethod_UpdateParcialRevalida(t *testing.T) {
	uc := newPaymentMethodUC()
	ctx := context.Background()
	pm, err := uc.Create(ctx, ownerA, pixRequest("PIX", false))
	require.NoError(t, err)

	updated, err := uc.Update(ctx, ownerA, pm.ID, dto.UpdatePaymentMethodRequest{Notes: dto.Some("cuenta principal")})
	require.NoError(t, err)
	assert.Equal(t, "cuenta principal", updated.Notes)
	assert.Equal(t, "chave@pix.com", updated.PixKey)

	_, err = uc.Update(ctx, ownerA, pm.ID, dto.UpdatePaymentMethodRequest{PixKey: dto.Some("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, ownerB, pm.ID, dto.UpdatePaymentMethodRequest{Notes: dto.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentMethod_BorradoLogico(t *testing.T) {
	db := memory.NewStore()
	repo := memory.NewPaymentMethodRepository(db)
	uc := billing.NewPaymentMethodUseCase(memory.NewTxRunner(db), repo)
	ctx := context.Background()

	pm, err := uc.Create(ctx, ownerA, pixRequest("PIX", true))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, ownerA, pm.ID))

	list, err := uc.List(ctx, ownerA)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.Get(ctx, ownerA, pm.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Sigue existiendo para las facturas que lo referencian
	stored, err := repo.GetByID(ctx, ownerA, pm.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, uc.Delete(ctx, ownerA, pm.ID), domain.ErrNotFound)
}
