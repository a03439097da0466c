package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/application/billing"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/domain/repository"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

type fixture struct {
	ctx      context.Context
	runner   *memory.TxRunner
	users    *memory.UserRepo
	projects *memory.ProjectRepo
	entries  *memory.TimeEntryRepo
	invoices *memory.InvoiceRepo
	pms      *memory.PaymentMethodRepo
	settings *memory.CompanySettingsRepo

	creator   *billing.CreateInvoiceUseCase
	lifecycle *billing.InvoiceUseCase
}

var testCfg = billing.Config{DefaultCurrency: "BRL", PaymentLinkDomain: "stripe.com"}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		runner:   memory.NewTxRunner(db),
		users:    memory.NewUserRepository(db),
		projects: memory.NewProjectRepository(db),
		entries:  memory.NewTimeEntryRepository(db),
		invoices: memory.NewInvoiceRepository(db),
		pms:      memory.NewPaymentMethodRepository(db),
		settings: memory.NewCompanySettingsRepository(db),
	}
	f.creator = billing.NewCreateInvoiceUseCase(f.runner, f.entries, f.pms, f.users, f.settings, testCfg)
	f.lifecycle = billing.NewInvoiceUseCase(f.runner, f.invoices, f.entries, f.pms, testCfg)
	return f
}

func (f *fixture) addProject(t *testing.T, ownerID string, rate int64, currency string) *entity.Project {
	t.Helper()
	p := &entity.Project{
		ID:         uuid.New().String(),
		OwnerID:    ownerID,
		Name:       "Proyecto " + currency,
		HourlyRate: decimal.NewFromInt(rate),
		Currency:   currency,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, f.projects.Create(f.ctx, p))
	return p
}

func (f *fixture) addEntry(t *testing.T, p *entity.Project, date string, hours float64) *entity.TimeEntry {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	e := &entity.TimeEntry{
		ID:              uuid.New().String(),
		OwnerID:         p.OwnerID,
		ProjectID:       p.ID,
		Activity:        "dev",
		Hours:           decimal.NewFromFloat(hours),
		Date:            d,
		RateAtEntry:     p.HourlyRate,
		CurrencyAtEntry: p.Currency,
		CreatedAt:       time.Now(),
	}
	require.NoError(t, f.entries.Create(f.ctx, e))
	return e
}

// seedJanuary crea el escenario base: 3 registros de 2h, 3h y 1h a 50 USD en enero 2024.
func (f *fixture) seedJanuary(t *testing.T, ownerID string) (*entity.Project, []*entity.TimeEntry) {
	t.Helper()
	p := f.addProject(t, ownerID, 50, "USD")
	return p, []*entity.TimeEntry{
		f.addEntry(t, p, "2024-01-05", 2),
		f.addEntry(t, p, "2024-01-12", 3),
		f.addEntry(t, p, "2024-01-20", 1),
	}
}

func januaryRequest(projectIDs ...string) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{ProjectIDs: projectIDs, DateFrom: "2024-01-01", DateTo: "2024-01-31"}
}

func (f *fixture) createJanuary(t *testing.T, ownerID, projectID string) *dto.CreateInvoiceResponse {
	t.Helper()
	inv, err := f.creator.CreateInvoice(f.ctx, ownerID, januaryRequest(projectID))
	require.NoError(t, err)
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// createInvoice
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoice_EscenarioBase(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)

	inv := f.createJanuary(t, ownerA, p.ID)

	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.TotalHours.Equal(decimal.NewFromInt(6)), "total horas: %s", inv.TotalHours)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(300)), "total: %s", inv.TotalAmount)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, 3, inv.ItemsCount)

	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	require.Len(t, full.Items, 3)
	assert.Equal(t, "2024-01-05", full.Items[0].Date, "los items van por fecha ascendente")
	assert.Equal(t, "2024-01-20", full.Items[2].Date)
}

func TestCreateInvoice_SegundaVez_SinRegistrosElegibles(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	f.createJanuary(t, ownerA, p.ID)

	_, err := f.creator.CreateInvoice(f.ctx, ownerA, januaryRequest(p.ID))
	assert.ErrorIs(t, err, domain.ErrNoEligibleEntries)
}

func TestCreateInvoice_NumeracionPorOwner(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	f.createJanuary(t, ownerA, p.ID)

	f.addEntry(t, p, "2024-02-10", 4)
	second, err := f.creator.CreateInvoice(f.ctx, ownerA, dto.CreateInvoiceRequest{
		ProjectIDs: []string{p.ID}, DateFrom: "2024-02-01", DateTo: "2024-02-29",
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.InvoiceNumber)

	// Otro owner empieza su propia secuencia
	pb, _ := f.seedJanuary(t, ownerB)
	other := f.createJanuary(t, ownerB, pb.ID)
	assert.Equal(t, "INV-0001", other.InvoiceNumber)
}

func TestCreateInvoice_FiltraRangoYPagados(t *testing.T) {
	f := newFixture(t)
	p := f.addProject(t, ownerA, 100, "BRL")
	f.addEntry(t, p, "2023-12-31", 5) // fuera de rango
	in := f.addEntry(t, p, "2024-01-31", 1)
	paid := f.addEntry(t, p, "2024-01-15", 2)
	require.NoError(t, f.entries.SetPaid(f.ctx, ownerA, paid.ID, true))

	inv := f.createJanuary(t, ownerA, p.ID)
	assert.Equal(t, 1, inv.ItemsCount)
	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(100)))

	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, in.ID, full.Items[0].TimeEntryID)
}

func TestCreateInvoice_Validaciones(t *testing.T) {
	f := newFixture(t)
	cases := map[string]dto.CreateInvoiceRequest{
		"sin proyectos":   {DateFrom: "2024-01-01", DateTo: "2024-01-31"},
		"ids vacíos":      {ProjectIDs: []string{" ", ""}, DateFrom: "2024-01-01", DateTo: "2024-01-31"},
		"rango invertido": {ProjectIDs: []string{"p"}, DateFrom: "2024-02-01", DateTo: "2024-01-31"},
		"fecha inválida":  {ProjectIDs: []string{"p"}, DateFrom: "01/01/2024", DateTo: "2024-01-31"},
		"status inicial":  {ProjectIDs: []string{"p"}, DateFrom: "2024-01-01", DateTo: "2024-01-31", Status: "paid"},
		"vencimiento":     {ProjectIDs: []string{"p"}, DateFrom: "2024-01-01", DateTo: "2024-01-31", DueDate: "2024-13-01"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.creator.CreateInvoice(f.ctx, ownerA, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateInvoice_MonedasMezcladas(t *testing.T) {
	f := newFixture(t)
	usd := f.addProject(t, ownerA, 50, "USD")
	brl := f.addProject(t, ownerA, 200, "BRL")
	f.addEntry(t, usd, "2024-01-05", 1)
	f.addEntry(t, brl, "2024-01-06", 1)

	_, err := f.creator.CreateInvoice(f.ctx, ownerA, januaryRequest(usd.ID, brl.ID))
	assert.ErrorIs(t, err, domain.ErrMixedCurrency)

	// Nada quedó vinculado
	inv := f.createJanuary(t, ownerA, usd.ID)
	assert.Equal(t, 1, inv.ItemsCount)
}

func TestCreateInvoice_IgnoraRegistrosDeOtroOwner(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)

	_, err := f.creator.CreateInvoice(f.ctx, ownerB, januaryRequest(p.ID))
	assert.ErrorIs(t, err, domain.ErrNoEligibleEntries)
}

func TestCreateInvoice_UsaConfiguracionDeEmpresa(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	require.NoError(t, f.settings.Upsert(f.ctx, &entity.CompanySettings{
		OwnerID: ownerA, CompanyName: "ACME Ltda", TaxID: "123", BankInfo: "Banco X",
	}))

	inv := f.createJanuary(t, ownerA, p.ID)
	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME Ltda", full.CompanyInfo.Name)
	assert.Equal(t, "Banco X", full.CompanyInfo.BankInfo)
}

func TestCreateInvoice_MedioDePagoDeOtroOwner(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	pm := newStripeMethod(ownerB)
	require.NoError(t, f.pms.Create(f.ctx, pm))

	req := januaryRequest(p.ID)
	req.PaymentMethodID = pm.ID
	_, err := f.creator.CreateInvoice(f.ctx, ownerA, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreviewInvoice_NoPersiste(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)

	preview, err := f.creator.PreviewInvoice(f.ctx, ownerA, dto.PreviewInvoiceRequest{
		ProjectIDs: []string{p.ID}, DateFrom: "2024-01-01", DateTo: "2024-01-31",
	})
	require.NoError(t, err)
	assert.Len(t, preview.Items, 3)
	assert.True(t, preview.TotalAmount.Equal(decimal.NewFromInt(300)))

	list, err := f.lifecycle.ListInvoices(f.ctx, ownerA)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// failingItemsRunner envuelve el runner real y hace fallar CreateItems
// después de insertar la cabecera.
type failingItemsRunner struct {
	inner *memory.TxRunner
}

type failingInvoiceRepo struct {
	repository.InvoiceRepository
}

var errStorageFault = errors.New("fallo simulado de almacenamiento")

func (failingInvoiceRepo) CreateItems(context.Context, string, []string) error {
	return errStorageFault
}

func (r failingItemsRunner) RunInvoicing(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	entryRepo repository.TimeEntryRepository,
) error) error {
	return r.inner.RunInvoicing(ctx, func(ir repository.InvoiceRepository, er repository.TimeEntryRepository) error {
		return fn(failingInvoiceRepo{ir}, er)
	})
}

func TestCreateInvoice_FalloParcial_NoDejaRastro(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)

	faulty := billing.NewCreateInvoiceUseCase(failingItemsRunner{inner: f.runner}, f.entries, f.pms, f.users, f.settings, testCfg)
	_, err := faulty.CreateInvoice(f.ctx, ownerA, januaryRequest(p.ID))
	require.ErrorIs(t, err, errStorageFault)

	list, err := f.lifecycle.ListInvoices(f.ctx, ownerA)
	require.NoError(t, err)
	assert.Empty(t, list, "no debe persistir la cabecera")

	last, err := f.invoices.LastNumber(f.ctx, ownerA)
	require.NoError(t, err)
	assert.Empty(t, last)

	// Los registros siguen siendo facturables
	inv := f.createJanuary(t, ownerA, p.ID)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, 3, inv.ItemsCount)
}

func TestCreateInvoice_Concurrente_SinDobleFacturacion(t *testing.T) {
	f := newFixture(t)
	p, entries := f.seedJanuary(t, ownerA)

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  []string
		failures []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := f.creator.CreateInvoice(f.ctx, ownerA, januaryRequest(p.ID))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
				return
			}
			created = append(created, inv.ID)
		}()
	}
	wg.Wait()

	require.Len(t, created, 1, "solo una creación debe tener éxito")
	for _, err := range failures {
		assert.ErrorIs(t, err, domain.ErrNoEligibleEntries)
	}

	linked := 0
	for _, e := range entries {
		got, err := f.entries.GetByID(f.ctx, ownerA, e.ID)
		require.NoError(t, err)
		if got.Invoiced() {
			linked++
		}
	}
	assert.Equal(t, 3, linked)
}

// ──────────────────────────────────────────────────────────────────────────────
// markPaid
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkPaid_CascadaEIdempotencia(t *testing.T) {
	f := newFixture(t)
	p, entries := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	n, err := f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	for _, e := range entries {
		got, err := f.entries.GetByID(f.ctx, ownerA, e.ID)
		require.NoError(t, err)
		assert.True(t, got.Paid, "el registro %s debe quedar pagado", e.ID)
	}

	n, err = f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "la segunda llamada no actualiza nada")

	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, full.Status)
}

func TestMarkPaid_NoEncontradaOAjena(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	_, err := f.lifecycle.MarkPaid(f.ctx, ownerB, inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.lifecycle.MarkPaid(f.ctx, ownerA, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkPaid_Cancelada(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)
	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{
		Status: dto.Some(entity.InvoiceStatusCancelled),
	}))

	_, err := f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestMarkPaid_CuentaRegistrosYaPagados(t *testing.T) {
	f := newFixture(t)
	p, entries := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)
	require.NoError(t, f.entries.SetPaid(f.ctx, ownerA, entries[0].ID, true))

	n, err := f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.EqualValues(t, len(entries), n, "cuenta todos los registros vinculados")
}

func TestSetPaid_FacturaPagadaNoVuelveAPendiente(t *testing.T) {
	f := newFixture(t)
	entryUC := usecase.NewTimeEntryUseCase(f.entries, f.projects)
	p, entries := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	// Factura aún no pagada: el flag se puede alternar
	out, err := entryUC.SetPaid(f.ctx, ownerA, entries[0].ID, true)
	require.NoError(t, err)
	assert.True(t, out.Paid)
	out, err = entryUC.SetPaid(f.ctx, ownerA, entries[0].ID, false)
	require.NoError(t, err)
	assert.False(t, out.Paid)

	_, err = f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)

	_, err = entryUC.SetPaid(f.ctx, ownerA, entries[1].ID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	got, err := f.entries.GetByID(f.ctx, ownerA, entries[1].ID)
	require.NoError(t, err)
	assert.True(t, got.Paid)

	_, err = entryUC.SetPaid(f.ctx, ownerA, entries[1].ID, true)
	assert.NoError(t, err, "marcar como pagado sigue permitido")

	// Registro sin facturar
	loose := f.addEntry(t, p, "2024-03-01", 1)
	_, err = entryUC.SetPaid(f.ctx, ownerA, loose.ID, false)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// updateInvoice
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateInvoice_PagadaEsInmutable(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)
	pm := newStripeMethod(ownerA)
	require.NoError(t, f.pms.Create(f.ctx, pm))
	_, err := f.lifecycle.MarkPaid(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)

	locked := map[string]dto.UpdateInvoiceRequest{
		"due_date":          {DueDate: dto.Some("2024-03-01")},
		"issue_date":        {IssueDate: dto.Some("2024-02-01")},
		"payment_method_id": {PaymentMethodID: dto.Some(pm.ID)},
		"status":            {Status: dto.Some(entity.InvoiceStatusDraft)},
		"fecha mal formada": {DueDate: dto.Some("mañana")},
	}
	for name, patch := range locked {
		t.Run(name, func(t *testing.T) {
			err := f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, patch)
			assert.ErrorIs(t, err, domain.ErrImmutableInvoice)
		})
	}

	err = f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{
		Notes:       dto.Some("pagado por transferencia"),
		PaymentLink: dto.Some("https://buy.stripe.com/abc"),
		Status:      dto.Some(entity.InvoiceStatusPaid),
	})
	require.NoError(t, err)

	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "pagado por transferencia", full.Notes)
	assert.Equal(t, "https://buy.stripe.com/abc", full.PaymentLink)
}

func TestUpdateInvoice_ParcialYBorrado(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)
	pm := newStripeMethod(ownerA)
	require.NoError(t, f.pms.Create(f.ctx, pm))

	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{
		DueDate:         dto.Some("2024-02-15"),
		PaymentMethodID: dto.Some(pm.ID),
		PaymentLink:     dto.Some("https://stripe.com/pay/1"),
		Notes:           dto.Some("primera"),
	}))

	// Solo notas: lo demás no cambia
	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{
		Notes: dto.Some("segunda"),
	}))
	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "segunda", full.Notes)
	assert.Equal(t, "2024-02-15", full.DueDate)
	assert.Equal(t, pm.ID, full.PaymentMethodID)
	require.NotNil(t, full.PaymentMethod)
	assert.Equal(t, "https://stripe.com/pay/1", full.PaymentLink)

	// Cadena vacía borra el enlace
	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{
		PaymentLink: dto.Some(""),
	}))
	full, err = f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, full.PaymentLink)
	assert.Equal(t, "segunda", full.Notes)
}

func TestUpdateInvoice_Validaciones(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)
	foreign := newStripeMethod(ownerB)
	require.NoError(t, f.pms.Create(f.ctx, foreign))

	err := f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{IssueDate: dto.Some("2024/01/01")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{PaymentLink: dto.Some("https://paypal.com/x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{PaymentMethodID: dto.Some(foreign.ID)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.lifecycle.UpdateInvoice(f.ctx, ownerB, inv.ID, dto.UpdateInvoiceRequest{Notes: dto.Some("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{Status: dto.Some("archived")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateInvoice_Transiciones(t *testing.T) {
	f := newFixture(t)
	p, entries := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{Status: dto.Some(entity.InvoiceStatusSent)}))

	err := f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{Status: dto.Some(entity.InvoiceStatusDraft)})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// sent -> paid por PATCH también marca los registros
	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{Status: dto.Some(entity.InvoiceStatusPaid)}))
	for _, e := range entries {
		got, err := f.entries.GetByID(f.ctx, ownerA, e.ID)
		require.NoError(t, err)
		assert.True(t, got.Paid)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// deleteInvoice
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteInvoice_SoloDraftOCancelled(t *testing.T) {
	f := newFixture(t)
	p, entries := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	require.NoError(t, f.lifecycle.UpdateInvoice(f.ctx, ownerA, inv.ID, dto.UpdateInvoiceRequest{Status: dto.Some(entity.InvoiceStatusSent)}))
	err := f.lifecycle.DeleteInvoice(f.ctx, ownerA, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	f.addEntry(t, p, "2024-03-01", 2)
	draft, err := f.creator.CreateInvoice(f.ctx, ownerA, dto.CreateInvoiceRequest{
		ProjectIDs: []string{p.ID}, DateFrom: "2024-03-01", DateTo: "2024-03-31",
	})
	require.NoError(t, err)
	require.NoError(t, f.lifecycle.DeleteInvoice(f.ctx, ownerA, draft.ID))

	_, err = f.lifecycle.GetInvoice(f.ctx, ownerA, draft.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Los items de la primera factura siguen intactos
	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.Len(t, full.Items, len(entries))
}

func TestDeleteInvoice_NoLiberaRegistros(t *testing.T) {
	f := newFixture(t)
	p, _ := f.seedJanuary(t, ownerA)
	inv := f.createJanuary(t, ownerA, p.ID)

	require.NoError(t, f.lifecycle.DeleteInvoice(f.ctx, ownerA, inv.ID))

	_, err := f.creator.CreateInvoice(f.ctx, ownerA, januaryRequest(p.ID))
	assert.ErrorIs(t, err, domain.ErrNoEligibleEntries)
}

func TestDeleteInvoice_NoEncontrada(t *testing.T) {
	f := newFixture(t)
	err := f.lifecycle.DeleteInvoice(f.ctx, ownerA, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tarifa histórica
// ──────────────────────────────────────────────────────────────────────────────

func TestTarifaHistorica_CambioDeTarifaNoAfecta(t *testing.T) {
	f := newFixture(t)
	projectUC := usecase.NewProjectUseCase(f.projects, f.entries)
	entryUC := usecase.NewTimeEntryUseCase(f.entries, f.projects)

	project, err := projectUC.Create(f.ctx, ownerA, dto.ProjectRequest{
		Name: "Web", HourlyRate: decimal.NewFromInt(50), Currency: "usd",
	})
	require.NoError(t, err)
	_, err = entryUC.Create(f.ctx, ownerA, dto.CreateTimeEntryRequest{
		ProjectID: project.ID, Hours: decimal.NewFromInt(2), Date: "2024-01-10",
	})
	require.NoError(t, err)

	inv := f.createJanuary(t, ownerA, project.ID)
	require.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(100)))

	// Subir la tarifa del proyecto
	_, err = projectUC.Update(f.ctx, ownerA, project.ID, dto.ProjectRequest{
		Name: "Web", HourlyRate: decimal.NewFromInt(80), Currency: "USD",
	})
	require.NoError(t, err)

	full, err := f.lifecycle.GetInvoice(f.ctx, ownerA, inv.ID)
	require.NoError(t, err)
	assert.True(t, full.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, full.Items[0].Rate.Equal(decimal.NewFromInt(50)))

	// Un registro nuevo sí usa la tarifa vigente
	created, err := entryUC.Create(f.ctx, ownerA, dto.CreateTimeEntryRequest{
		ProjectID: project.ID, Hours: decimal.NewFromInt(1), Date: "2024-02-01",
	})
	require.NoError(t, err)
	assert.True(t, created.RateAtEntryTime.Equal(decimal.NewFromInt(80)))
}

func newStripeMethod(ownerID string) *entity.PaymentMethod {
	return &entity.PaymentMethod{
		ID:                  uuid.New().String(),
		OwnerID:             ownerID,
		Name:                "Stripe",
		Type:                entity.PaymentTypeStripe,
		Currency:            "USD",
		StripeEmail:         "billing@example.com",
		StripeFeePercentage: decimal.NewFromInt(6),
		IsActive:            true,
		CreatedAt:           time.Now(),
	}
}
