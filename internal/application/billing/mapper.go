package billing

import (
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
	"github.com/samber/lo"
)

func toSummaryResponse(inv *entity.Invoice) dto.InvoiceSummaryResponse {
	out := dto.InvoiceSummaryResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.Number,
		Status:        inv.Status,
		ClientName:    inv.Client.Name,
		DateFrom:      inv.DateFrom.Format(invoicing.DateLayout),
		DateTo:        inv.DateTo.Format(invoicing.DateLayout),
		IssueDate:     inv.IssueDate.Format(invoicing.DateLayout),
		TotalHours:    inv.TotalHours,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		ItemsCount:    inv.ItemsCount,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.DueDate != nil {
		out.DueDate = inv.DueDate.Format(invoicing.DateLayout)
	}
	return out
}

func toInvoiceResponse(inv *entity.Invoice, entries []*entity.TimeEntry, pm *entity.PaymentMethod) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		InvoiceSummaryResponse: toSummaryResponse(inv),
		ClientID:               inv.ClientID,
		PaymentMethodID:        inv.PaymentMethodID,
		CompanyInfo: dto.CompanyInfoDTO{
			Name:     inv.Company.Name,
			Address:  inv.Company.Address,
			TaxID:    inv.Company.TaxID,
			BankInfo: inv.Company.BankInfo,
		},
		ClientInfo: dto.ClientInfoDTO{
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Address: inv.Client.Address,
			TaxID:   inv.Client.TaxID,
		},
		Notes:       inv.Notes,
		PaymentLink: inv.PaymentLink,
		Items:       toItemResponses(entries),
		UpdatedAt:   inv.UpdatedAt,
	}
	out.ItemsCount = len(out.Items)
	if pm != nil {
		r := toPaymentMethodResponse(pm)
		out.PaymentMethod = &r
	}
	return out
}

func toItemResponses(entries []*entity.TimeEntry) []dto.InvoiceItemResponse {
	return lo.Map(entries, func(e *entity.TimeEntry, _ int) dto.InvoiceItemResponse {
		return dto.InvoiceItemResponse{
			TimeEntryID: e.ID,
			Date:        e.Date.Format(invoicing.DateLayout),
			ProjectID:   e.ProjectID,
			ProjectName: e.ProjectName,
			Activity:    e.Activity,
			Description: e.Description,
			Hours:       e.Hours,
			Rate:        e.RateAtEntry,
			Amount:      e.Amount().Round(2),
			Paid:        e.Paid,
		}
	})
}

func toPaymentMethodResponse(pm *entity.PaymentMethod) dto.PaymentMethodResponse {
	out := dto.PaymentMethodResponse{
		ID: pm.ID,
		PaymentMethodFields: dto.PaymentMethodFields{
			Name:                     pm.Name,
			Type:                     pm.Type,
			Currency:                 pm.Currency,
			PixKey:                   pm.PixKey,
			PixKeyType:               pm.PixKeyType,
			BeneficiaryName:          pm.BeneficiaryName,
			BeneficiaryAccountNumber: pm.BeneficiaryAccountNumber,
			SwiftCode:                pm.SwiftCode,
			BankName:                 pm.BankName,
			BankAddress:              pm.BankAddress,
			IntermediarySwiftCode:    pm.IntermediarySwiftCode,
			IntermediaryBankName:     pm.IntermediaryBankName,
			IntermediaryBankAddress:  pm.IntermediaryBankAddress,
			IntermediaryAccount:      pm.IntermediaryAccount,
			EntityType:               pm.EntityType,
			EntityName:               pm.EntityName,
			EntityTaxID:              pm.EntityTaxID,
			PaypalEmail:              pm.PaypalEmail,
			StripeEmail:              pm.StripeEmail,
			IsDefault:                pm.IsDefault,
			Notes:                    pm.Notes,
		},
		IsActive:  pm.IsActive,
		CreatedAt: pm.CreatedAt,
	}
	switch pm.Type {
	case entity.PaymentTypePaypal:
		out.PaypalFeePercentage = lo.ToPtr(pm.PaypalFeePercentage)
	case entity.PaymentTypeStripe:
		out.StripeFeePercentage = lo.ToPtr(pm.StripeFeePercentage)
	}
	return out
}
