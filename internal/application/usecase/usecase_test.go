package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Timesheet-api/internal/application/auth"
	"github.com/jhoicas/Timesheet-api/internal/application/dto"
	"github.com/jhoicas/Timesheet-api/internal/application/usecase"
	"github.com/jhoicas/Timesheet-api/internal/domain"
	"github.com/jhoicas/Timesheet-api/internal/domain/entity"
	"github.com/jhoicas/Timesheet-api/internal/infrastructure/memory"
)

type deps struct {
	ctx      context.Context
	users    *memory.UserRepo
	entries  *memory.TimeEntryRepo
	projects *usecase.ProjectUseCase
	timesht  *usecase.TimeEntryUseCase
	clients  *usecase.ClientUseCase
	company  *usecase.CompanyUseCase
	admin    usecase.Actor
}

func setup(t *testing.T) *deps {
	t.Helper()
	db := memory.NewStore()
	users := memory.NewUserRepository(db)
	projects := memory.NewProjectRepository(db)
	entries := memory.NewTimeEntryRepository(db)

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: "test", ExpMinutes: 60, Issuer: "test"})
	admin, err := authUC.RegisterAdmin(context.Background(), dto.RegisterRequest{Email: "admin@example.com", Password: "secreto"})
	require.NoError(t, err)

	return &deps{
		ctx:      context.Background(),
		users:    users,
		entries:  entries,
		projects: usecase.NewProjectUseCase(projects, entries),
		timesht:  usecase.NewTimeEntryUseCase(entries, projects),
		clients:  usecase.NewClientUseCase(memory.NewTxRunner(db), users),
		company:  usecase.NewCompanyUseCase(memory.NewCompanySettingsRepository(db)),
		admin:    usecase.Actor{UserID: admin.ID, OwnerID: admin.OwnerID, Role: entity.RoleAdmin},
	}
}

func (d *deps) project(t *testing.T, name string, activities ...string) *dto.ProjectResponse {
	t.Helper()
	p, err := d.projects.Create(d.ctx, d.admin.OwnerID, dto.ProjectRequest{
		Name: name, HourlyRate: decimal.NewFromInt(40), Currency: "brl", Activities: activities,
	})
	require.NoError(t, err)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyectos
// ──────────────────────────────────────────────────────────────────────────────

func TestProject_CreateNormaliza(t *testing.T) {
	d := setup(t)
	p := d.project(t, "  Web  ", "dev", " dev ", "", "qa")

	assert.Equal(t, "Web", p.Name)
	assert.Equal(t, "BRL", p.Currency)
	assert.Equal(t, []string{"dev", "qa"}, p.Activities)
}

func TestProject_Validaciones(t *testing.T) {
	d := setup(t)
	cases := map[string]dto.ProjectRequest{
		"sin nombre":      {HourlyRate: decimal.NewFromInt(1), Currency: "USD"},
		"tarifa cero":     {Name: "x", HourlyRate: decimal.Zero, Currency: "USD"},
		"tarifa negativa": {Name: "x", HourlyRate: decimal.NewFromInt(-5), Currency: "USD"},
		"moneda inválida": {Name: "x", HourlyRate: decimal.NewFromInt(1), Currency: "DOLARES"},
		"tres decimales":  {Name: "x", HourlyRate: decimal.RequireFromString("12.345"), Currency: "USD"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := d.projects.Create(d.ctx, d.admin.OwnerID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProject_DeleteConRegistros(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web")
	_, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: p.ID, Hours: decimal.NewFromInt(1), Date: "2024-01-01",
	})
	require.NoError(t, err)

	err = d.projects.Delete(d.ctx, d.admin.OwnerID, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	empty := d.project(t, "Vacío")
	require.NoError(t, d.projects.Delete(d.ctx, d.admin.OwnerID, empty.ID))
	assert.ErrorIs(t, d.projects.Delete(d.ctx, d.admin.OwnerID, empty.ID), domain.ErrNotFound)
}

func TestProject_UpdateDeOtroOwner(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web")
	_, err := d.projects.Update(d.ctx, "otro-owner", p.ID, dto.ProjectRequest{
		Name: "x", HourlyRate: decimal.NewFromInt(1), Currency: "USD",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registros de horas
// ──────────────────────────────────────────────────────────────────────────────

func TestTimeEntry_Create(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web", "dev")

	e, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: p.ID, Activity: "dev", Hours: decimal.RequireFromString("2.5"), Date: "2024-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", e.Date)
	assert.True(t, e.RateAtEntryTime.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "BRL", e.CurrencyAtEntryTime)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(100)))
	assert.False(t, e.Paid)
	assert.False(t, e.Invoiced)
}

func TestTimeEntry_Validaciones(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web", "dev")

	cases := map[string]dto.CreateTimeEntryRequest{
		"horas cero":           {ProjectID: p.ID, Activity: "dev", Hours: decimal.Zero, Date: "2024-01-01"},
		"más de 24 horas":      {ProjectID: p.ID, Activity: "dev", Hours: decimal.NewFromInt(25), Date: "2024-01-01"},
		"fecha inválida":       {ProjectID: p.ID, Activity: "dev", Hours: decimal.NewFromInt(1), Date: "10-01-2024"},
		"actividad no listada": {ProjectID: p.ID, Activity: "diseño", Hours: decimal.NewFromInt(1), Date: "2024-01-01"},
		"tres decimales":       {ProjectID: p.ID, Activity: "dev", Hours: decimal.RequireFromString("1.333"), Date: "2024-01-01"},
		"redondea a cero":      {ProjectID: p.ID, Activity: "dev", Hours: decimal.RequireFromString("0.004"), Date: "2024-01-01"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := d.timesht.Create(d.ctx, d.admin.OwnerID, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: "no-existe", Hours: decimal.NewFromInt(1), Date: "2024-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTimeEntry_CerosFinalesNoCuentanComoDecimales(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web")

	e, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: p.ID, Hours: decimal.RequireFromString("1.2500"), Date: "2024-01-01",
	})
	require.NoError(t, err)
	assert.True(t, e.Hours.Equal(decimal.RequireFromString("1.25")))
}

func TestTimeEntry_SetPaidYDelete(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web")
	e, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: p.ID, Hours: decimal.NewFromInt(1), Date: "2024-01-01",
	})
	require.NoError(t, err)

	updated, err := d.timesht.SetPaid(d.ctx, d.admin.OwnerID, e.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Paid)

	require.NoError(t, d.timesht.Delete(d.ctx, d.admin.OwnerID, e.ID))
	assert.ErrorIs(t, d.timesht.Delete(d.ctx, d.admin.OwnerID, e.ID), domain.ErrNotFound)
}

func TestTimeEntry_DeleteFacturado(t *testing.T) {
	d := setup(t)
	p := d.project(t, "Web")
	e, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
		ProjectID: p.ID, Hours: decimal.NewFromInt(1), Date: "2024-01-01",
	})
	require.NoError(t, err)

	stored, err := d.entries.GetByID(d.ctx, d.admin.OwnerID, e.ID)
	require.NoError(t, err)
	n, err := d.entries.MarkInvoiced(d.ctx, d.admin.OwnerID, []string{e.ID}, stored.CreatedAt)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	err = d.timesht.Delete(d.ctx, d.admin.OwnerID, e.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clients y visibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_VeSoloProyectosAsignados(t *testing.T) {
	d := setup(t)
	assigned := d.project(t, "Asignado")
	hidden := d.project(t, "Oculto")
	for _, p := range []*dto.ProjectResponse{assigned, hidden} {
		_, err := d.timesht.Create(d.ctx, d.admin.OwnerID, dto.CreateTimeEntryRequest{
			ProjectID: p.ID, Hours: decimal.NewFromInt(2), Date: "2024-01-02",
		})
		require.NoError(t, err)
	}

	client, err := d.clients.Create(d.ctx, d.admin.OwnerID, dto.CreateClientRequest{
		Email: "Cliente@Example.com", Password: "secreto", ProjectIDs: []string{assigned.ID, assigned.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleClient, client.Role)
	assert.Equal(t, d.admin.OwnerID, client.OwnerID)
	assert.Equal(t, "cliente@example.com", client.Email)
	assert.Equal(t, []string{assigned.ID}, client.ProjectIDs)

	actor := usecase.Actor{UserID: client.ID, OwnerID: client.OwnerID, Role: entity.RoleClient}
	projects, err := d.projects.List(d.ctx, actor)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, assigned.ID, projects[0].ID)

	entries, err := d.timesht.List(d.ctx, actor)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, assigned.ID, entries[0].ProjectID)

	all, err := d.timesht.List(d.ctx, d.admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClient_EmailDuplicadoYProyectoAjeno(t *testing.T) {
	d := setup(t)
	_, err := d.clients.Create(d.ctx, d.admin.OwnerID, dto.CreateClientRequest{
		Email: "admin@example.com", Password: "secreto",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = d.clients.Create(d.ctx, d.admin.OwnerID, dto.CreateClientRequest{
		Email: "c@example.com", Password: "secreto", ProjectIDs: []string{"no-existe"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Nada quedó a medias
	list, err := d.clients.List(d.ctx, d.admin.OwnerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_UpdateProjectsYDelete(t *testing.T) {
	d := setup(t)
	a := d.project(t, "A")
	b := d.project(t, "B")
	client, err := d.clients.Create(d.ctx, d.admin.OwnerID, dto.CreateClientRequest{
		Email: "c@example.com", Password: "secreto", ProjectIDs: []string{a.ID},
	})
	require.NoError(t, err)

	updated, err := d.clients.UpdateProjects(d.ctx, d.admin.OwnerID, client.ID, dto.UpdateClientRequest{ProjectIDs: []string{b.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, updated.ProjectIDs)

	list, err := d.clients.List(d.ctx, d.admin.OwnerID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{b.ID}, list[0].ProjectIDs)

	_, err = d.clients.UpdateProjects(d.ctx, "otro-owner", client.ID, dto.UpdateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// El admin no puede borrarse a sí mismo por esta vía
	assert.ErrorIs(t, d.clients.Delete(d.ctx, d.admin.OwnerID, d.admin.UserID), domain.ErrNotFound)

	require.NoError(t, d.clients.Delete(d.ctx, d.admin.OwnerID, client.ID))
	list, err = d.clients.List(d.ctx, d.admin.OwnerID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestCompany_GetVacioYUpsert(t *testing.T) {
	d := setup(t)

	empty, err := d.company.Get(d.ctx, d.admin.OwnerID)
	require.NoError(t, err)
	assert.Empty(t, empty.CompanyName)
	assert.Nil(t, empty.UpdatedAt)

	_, err = d.company.Upsert(d.ctx, d.admin.OwnerID, dto.CompanySettingsRequest{CompanyName: " ACME ", TaxID: "1"})
	require.NoError(t, err)
	_, err = d.company.Upsert(d.ctx, d.admin.OwnerID, dto.CompanySettingsRequest{CompanyName: "ACME 2"})
	require.NoError(t, err)

	got, err := d.company.Get(d.ctx, d.admin.OwnerID)
	require.NoError(t, err)
	assert.Equal(t, "ACME 2", got.CompanyName)
	assert.Empty(t, got.TaxID, "upsert reemplaza todos los campos")
	assert.NotNil(t, got.UpdatedAt)
}
