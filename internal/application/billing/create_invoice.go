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
	"github.com/jhoicas/Timesheet-api/internal/domain/invoicing"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/samber/lo"
)

// CreateInvoiceUseCase agrupa los registros facturables de un rango en una factura nueva.
// Factura, items y marca de facturado de los registros se guardan en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     InvoicingTxRunner
	entryRepo    repository.TimeEntryRepository
	pmRepo       repository.PaymentMethodRepository
	userRepo     repository.UserRepository
	settingsRepo repository.CompanySettingsRepository
	cfg          Config
	now          func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner InvoicingTxRunner,
	entryRepo repository.TimeEntryRepository,
	pmRepo repository.PaymentMethodRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.CompanySettingsRepository,
	cfg Config,
) *CreateInvoiceUseCase {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "BRL"
	}
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		pmRepo:       pmRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CreateInvoice crea la factura con los registros no pagados y nunca facturados de projectIDs
// en [date_from, date_to]. Sin registros elegibles retorna domain.ErrNoEligibleEntries.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, ownerID string, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	projectIDs := normalizeIDs(in.ProjectIDs)
	if len(projectIDs) == 0 {
		return nil, fmt.Errorf("%w: project_ids es obligatorio", domain.ErrInvalidInput)
	}
	from, to, err := parseRange(in.DateFrom, in.DateTo)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	issueDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(in.IssueDate) != "" {
		if issueDate, err = invoicing.ParseDate("issue_date", in.IssueDate); err != nil {
			return nil, err
		}
	}
	var dueDate *time.Time
	if strings.TrimSpace(in.DueDate) != "" {
		d, err := invoicing.ParseDate("due_date", in.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !invoicing.ValidInitialStatus(status) {
		return nil, fmt.Errorf("%w: status inicial debe ser draft o sent", domain.ErrInvalidInput)
	}

	// Validaciones de pertenencia (fuera de la tx, solo lectura)
	paymentMethodID := strings.TrimSpace(in.PaymentMethodID)
	if paymentMethodID != "" {
		pm, err := uc.pmRepo.GetByID(ctx, ownerID, paymentMethodID)
		if err != nil {
			return nil, fmt.Errorf("obtener medio de pago: %w", err)
		}
		if pm == nil || !pm.IsActive {
			return nil, fmt.Errorf("%w: medio de pago", domain.ErrNotFound)
		}
	}

	clientInfo := entity.ClientInfo{}
	if in.ClientInfo != nil {
		clientInfo = entity.ClientInfo{
			Name:    strings.TrimSpace(in.ClientInfo.Name),
			Email:   strings.TrimSpace(in.ClientInfo.Email),
			Address: strings.TrimSpace(in.ClientInfo.Address),
			TaxID:   strings.TrimSpace(in.ClientInfo.TaxID),
		}
	}
	clientID := strings.TrimSpace(in.ClientID)
	if clientID != "" {
		client, err := uc.userRepo.GetByID(ctx, clientID)
		if err != nil {
			return nil, fmt.Errorf("obtener cliente: %w", err)
		}
		if client == nil || client.Role != entity.RoleClient || client.OwnerID != ownerID {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
		if in.ClientInfo == nil {
			clientInfo = entity.ClientInfo{Name: client.Name, Email: client.Email}
		}
	}

	companyInfo, err := uc.resolveCompany(ctx, ownerID, in.CompanyInfo)
	if err != nil {
		return nil, err
	}

	var inv *entity.Invoice
	err = uc.txRunner.RunInvoicing(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		entryRepo repository.TimeEntryRepository,
	) error {
		// 1) Serializar creaciones del mismo owner (numeración y selección de registros)
		if err := invoiceRepo.LockOwner(ctx, ownerID); err != nil {
			return err
		}

		// 2) Registros elegibles, por fecha
		entries, err := entryRepo.ListBillable(ctx, ownerID, projectIDs, from, to)
		if err != nil {
			return err
		}

		// 3) Totales con la tarifa histórica de cada registro
		totals, err := invoicing.Summarize(entries, uc.cfg.DefaultCurrency)
		if err != nil {
			return err
		}

		// 4) Número correlativo del owner
		last, err := invoiceRepo.LastNumber(ctx, ownerID)
		if err != nil {
			return err
		}

		inv = &entity.Invoice{
			ID:              uuid.New().String(),
			OwnerID:         ownerID,
			ClientID:        clientID,
			Number:          invoicing.NextNumber(last),
			Status:          status,
			DateFrom:        from,
			DateTo:          to,
			IssueDate:       issueDate,
			DueDate:         dueDate,
			TotalHours:      totals.Hours,
			TotalAmount:     totals.Amount,
			Currency:        totals.Currency,
			PaymentMethodID: paymentMethodID,
			Company:         companyInfo,
			Client:          clientInfo,
			Notes:           strings.TrimSpace(in.Notes),
			ItemsCount:      totals.Count,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		// 5) Cabecera, vínculos y marca de facturado: todo o nada
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		ids := lo.Map(entries, func(e *entity.TimeEntry, _ int) string { return e.ID })
		if err := invoiceRepo.CreateItems(ctx, inv.ID, ids); err != nil {
			return err
		}
		n, err := entryRepo.MarkInvoiced(ctx, ownerID, ids, now)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("%w: registros facturados por otra operación", domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateInvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.Number,
		Status:        inv.Status,
		TotalHours:    inv.TotalHours,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		ItemsCount:    inv.ItemsCount,
	}, nil
}

// PreviewInvoice devuelve los registros que entrarían en la factura y sus totales, sin persistir.
func (uc *CreateInvoiceUseCase) PreviewInvoice(ctx context.Context, ownerID string, in dto.PreviewInvoiceRequest) (*dto.InvoicePreviewResponse, error) {
	projectIDs := normalizeIDs(in.ProjectIDs)
	if len(projectIDs) == 0 {
		return nil, fmt.Errorf("%w: project_ids es obligatorio", domain.ErrInvalidInput)
	}
	from, to, err := parseRange(in.DateFrom, in.DateTo)
	if err != nil {
		return nil, err
	}
	entries, err := uc.entryRepo.ListBillable(ctx, ownerID, projectIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("listar registros facturables: %w", err)
	}
	totals, err := invoicing.Summarize(entries, uc.cfg.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	return &dto.InvoicePreviewResponse{
		TotalHours:  totals.Hours,
		TotalAmount: totals.Amount,
		Currency:    totals.Currency,
		Items:       toItemResponses(entries),
	}, nil
}

// resolveCompany usa company_info del body o, si no viene, la configuración guardada del owner.
func (uc *CreateInvoiceUseCase) resolveCompany(ctx context.Context, ownerID string, in *dto.CompanyInfoDTO) (entity.CompanyInfo, error) {
	if in != nil {
		return entity.CompanyInfo{
			Name:     strings.TrimSpace(in.Name),
			Address:  strings.TrimSpace(in.Address),
			TaxID:    strings.TrimSpace(in.TaxID),
			BankInfo: strings.TrimSpace(in.BankInfo),
		}, nil
	}
	settings, err := uc.settingsRepo.Get(ctx, ownerID)
	if err != nil {
		return entity.CompanyInfo{}, fmt.Errorf("obtener configuración de empresa: %w", err)
	}
	if settings == nil {
		return entity.CompanyInfo{}, nil
	}
	return settings.CompanyInfo(), nil
}

// normalizeIDs limpia espacios, descarta vacíos y duplicados conservando el orden.
func normalizeIDs(ids []string) []string {
	trimmed := lo.Map(ids, func(id string, _ int) string { return strings.TrimSpace(id) })
	return lo.Uniq(lo.Compact(trimmed))
}

// parseRange valida date_from <= date_to (YYYY-MM-DD).
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := invoicing.ParseDate("date_from", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := invoicing.ParseDate("date_to", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date_from debe ser anterior o igual a date_to", domain.ErrInvalidInput)
	}
	return from, to, nil
}
