package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodFields campos comunes de alta y respuesta.
type PaymentMethodFields struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`

	PixKey     string `json:"pix_key,omitempty"`
	PixKeyType string `json:"pix_key_type,omitempty"`

	BeneficiaryName          string `json:"beneficiary_name,omitempty"`
	BeneficiaryAccountNumber string `json:"beneficiary_account_number,omitempty"`
	SwiftCode                string `json:"swift_code,omitempty"`
	BankName                 string `json:"bank_name,omitempty"`
	BankAddress              string `json:"bank_address,omitempty"`
	IntermediarySwiftCode    string `json:"intermediary_swift_code,omitempty"`
	IntermediaryBankName     string `json:"intermediary_bank_name,omitempty"`
	IntermediaryBankAddress  string `json:"intermediary_bank_address,omitempty"`
	IntermediaryAccount      string `json:"intermediary_account_number,omitempty"`
	EntityType               string `json:"entity_type,omitempty"`
	EntityName               string `json:"entity_name,omitempty"`
	EntityTaxID              string `json:"entity_tax_id,omitempty"`

	PaypalEmail         string           `json:"paypal_email,omitempty"`
	PaypalFeePercentage *decimal.Decimal `json:"paypal_fee_percentage,omitempty"`
	StripeEmail         string           `json:"stripe_email,omitempty"`
	StripeFeePercentage *decimal.Decimal `json:"stripe_fee_percentage,omitempty"`

	IsDefault bool   `json:"is_default"`
	Notes     string `json:"notes,omitempty"`
}

// CreatePaymentMethodRequest body para POST /api/payment-methods.
type CreatePaymentMethodRequest struct {
	PaymentMethodFields
}

// UpdatePaymentMethodRequest body para PATCH /api/payment-methods/:id (parcial).
type UpdatePaymentMethodRequest struct {
	Name                     Optional[string]          `json:"name"`
	Currency                 Optional[string]          `json:"currency"`
	PixKey                   Optional[string]          `json:"pix_key"`
	PixKeyType               Optional[string]          `json:"pix_key_type"`
	BeneficiaryName          Optional[string]          `json:"beneficiary_name"`
	BeneficiaryAccountNumber Optional[string]          `json:"beneficiary_account_number"`
	SwiftCode                Optional[string]          `json:"swift_code"`
	BankName                 Optional[string]          `json:"bank_name"`
	BankAddress              Optional[string]          `json:"bank_address"`
	IntermediarySwiftCode    Optional[string]          `json:"intermediary_swift_code"`
	IntermediaryBankName     Optional[string]          `json:"intermediary_bank_name"`
	IntermediaryBankAddress  Optional[string]          `json:"intermediary_bank_address"`
	IntermediaryAccount      Optional[string]          `json:"intermediary_account_number"`
	EntityType               Optional[string]          `json:"entity_type"`
	EntityName               Optional[string]          `json:"entity_name"`
	EntityTaxID              Optional[string]          `json:"entity_tax_id"`
	PaypalEmail              Optional[string]          `json:"paypal_email"`
	PaypalFeePercentage      Optional[decimal.Decimal] `json:"paypal_fee_percentage"`
	StripeEmail              Optional[string]          `json:"stripe_email"`
	StripeFeePercentage      Optional[decimal.Decimal] `json:"stripe_fee_percentage"`
	IsDefault                Optional[bool]            `json:"is_default"`
	Notes                    Optional[string]          `json:"notes"`
}

// PaymentMethodResponse medio de pago en respuestas.
type PaymentMethodResponse struct {
	ID string `json:"id"`
	PaymentMethodFields
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
