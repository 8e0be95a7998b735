package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardCards(t *testing.T) {
	m := newMockBackend()
	m.dashboard.On("Get", mock.Anything).Return(&models.DashboardData{
		TicketStats:     models.TicketStats{Aperti: 12, Nuovi: 3, InLavorazione: 5, ChiusiOggi: 2},
		InterventoStats: models.InterventoStats{Pianificati: 4},
		RecentTickets: []models.RecentTicket{
			{ID: 1, Numero: "TK-1", PrioritaCodice: "URGENTE", PrioritaDescrizione: "Urgente", StatoCodice: "NUOVO"},
		},
		InterventiOggi: []models.InterventoOggi{
			{ID: 9, StatoCodice: "PIANIFICATO", TipoRichiedeViaggio: true},
			{ID: 10, StatoCodice: "IN_CORSO"},
		},
	}, nil)

	view, err := NewDashboardService(m.backend(), testLogger()).View(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Cards, 4)
	assert.Equal(t, models.StatCard{Name: "Ticket Aperti", Value: 12, Detail: "3 nuovi", Href: "/tickets"}, view.Cards[0])
	assert.Equal(t, 5, view.Cards[1].Value)
	assert.Equal(t, 2, view.Cards[2].Value)
	assert.Equal(t, models.StatCard{Name: "Interventi Oggi", Value: 2, Detail: "4 pianificati", Href: "/interventions"}, view.Cards[3])

	require.Len(t, view.RecentTickets, 1)
	assert.Equal(t, "Urgente", view.RecentTickets[0].PrioritaBadge.Label)
	assert.Contains(t, view.RecentTickets[0].PrioritaBadge.Class, "orange")
	assert.Equal(t, "NUOVO", view.RecentTickets[0].StatoBadge.Label)

	require.Len(t, view.InterventiOggi, 2)
	assert.Equal(t, "VIAGGIO", view.InterventiOggi[0].TravelBadge.Code)
	assert.Equal(t, "SEDE", view.InterventiOggi[1].TravelBadge.Code)
}

func TestLayoutMarksActiveItem(t *testing.T) {
	state := models.SessionState{User: &models.User{Nome: "Mario", Cognome: "Rossi"}, IsAuthenticated: true}

	view := Layout(state, "/tickets")

	assert.Equal(t, "DAAssist", view.AppName)
	assert.Equal(t, "Mario Rossi", view.UserName)
	require.Len(t, view.Navigation, len(Navigation))
	for _, item := range view.Navigation {
		assert.Equal(t, item.Href == "/tickets", item.Active, item.Href)
	}
	assert.False(t, Navigation[1].Active)
}

func TestLayoutPrefixDoesNotMatch(t *testing.T) {
	view := Layout(models.SessionState{}, "/tickets/12")

	for _, item := range view.Navigation {
		assert.False(t, item.Active, item.Href)
	}
	assert.Empty(t, view.UserName)
}

func TestTechnicianListDefaultsToActive(t *testing.T) {
	m := newMockBackend()
	active := true
	m.technicians.On("List", mock.Anything, models.TechnicianFilters{Page: 1, Limit: 50, Attivo: &active}).
		Return(&models.TechnicianListResponse{Total: 1, Items: []models.Technician{{ID: 3, Nome: "Luca", Cognome: "Bianchi"}}}, nil)
	m.lookup.On("Departments", mock.Anything).Return([]models.Department{{LookupItem: lookupItem(1, "IT")}}, nil)
	m.lookup.On("UserRoles", mock.Anything).Return(nil, nil)

	view, err := NewTechnicianService(m.backend(), testLogger()).List(context.Background(), ListQuery[models.TechnicianFilters]{})
	require.NoError(t, err)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Luca Bianchi", view.Rows[0].NomeCompleto)
	assert.Len(t, view.Reparti, 1)
	assert.NotNil(t, view.Ruoli)
	assert.True(t, *view.Filters.Attivo)
}

func TestTechnicianDraftDefaults(t *testing.T) {
	m := newMockBackend()
	m.lookup.On("UserRoles", mock.Anything).Return([]models.UserRole{
		{LookupItem: lookupItem(1, "ADMIN")},
		{LookupItem: lookupItem(2, "TECNICO")},
	}, nil)

	draft, err := NewTechnicianService(m.backend(), testLogger()).Draft(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), draft.RuoloID)
	assert.Equal(t, models.DefaultCalendarColor, draft.ColoreCalendario)
	assert.True(t, draft.NotificheEmail)
	assert.True(t, draft.NotifichePush)
}

func TestTechnicianCreateValidation(t *testing.T) {
	m := newMockBackend()
	svc := NewTechnicianService(m.backend(), testLogger())

	_, err := svc.Create(context.Background(), models.TechnicianCreate{Username: "lbianchi", Email: "not-an-email", Password: "123"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Email")
	assert.Contains(t, verr.Fields, "Password")
	m.technicians.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTechnicianCreateAppliesDefaultColor(t *testing.T) {
	m := newMockBackend()
	req := models.TechnicianCreate{Username: "lbianchi", Email: "l.bianchi@example.com", Password: "secret1", Nome: "Luca", Cognome: "Bianchi", RuoloID: 2}
	expected := req
	expected.ColoreCalendario = models.DefaultCalendarColor
	m.technicians.On("Create", mock.Anything, expected).Return(&models.Technician{ID: 3, Username: "lbianchi"}, nil)

	tech, err := NewTechnicianService(m.backend(), testLogger()).Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tech.ID)
}

func TestTechnicianToggleActive(t *testing.T) {
	m := newMockBackend()
	m.technicians.On("Get", mock.Anything, int64(3)).Return(&models.Technician{ID: 3, Attivo: true}, nil)
	inactive := false
	m.technicians.On("Update", mock.Anything, int64(3), models.TechnicianUpdate{Attivo: &inactive}).
		Return(&models.Technician{ID: 3, Attivo: false}, nil)

	tech, err := NewTechnicianService(m.backend(), testLogger()).ToggleActive(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, tech.Attivo)
}

func TestTechnicianToggleMissing(t *testing.T) {
	m := newMockBackend()
	m.technicians.On("Get", mock.Anything, int64(4)).Return(nil, &apiclient.APIError{StatusCode: 404})

	_, err := NewTechnicianService(m.backend(), testLogger()).ToggleActive(context.Background(), 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTechnicianDelete(t *testing.T) {
	m := newMockBackend()
	m.technicians.On("Delete", mock.Anything, int64(4)).Return(nil)
	m.technicians.On("Delete", mock.Anything, int64(5)).Return(&apiclient.APIError{StatusCode: 404})
	svc := NewTechnicianService(m.backend(), testLogger())

	assert.NoError(t, svc.Delete(context.Background(), 4))
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrNotFound)
}
