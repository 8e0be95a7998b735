package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TicketFormTestSuite struct {
	suite.Suite
	ctx  context.Context
	m    *mockBackend
	form *TicketForm
}

func (suite *TicketFormTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.m = newMockBackend()
	suite.form = NewTicketForm(suite.m.backend(), testLogger())
	suite.form.now = func() time.Time { return time.Date(2024, time.June, 1, 10, 0, 0, 0, time.Local) }
}

func TestTicketFormTestSuite(t *testing.T) {
	suite.Run(t, new(TicketFormTestSuite))
}

func (suite *TicketFormTestSuite) expectLookups() {
	suite.m.clients.On("List", mock.Anything, models.ClienteFilters{Limit: 100}).
		Return(&models.ClienteListResponse{Clienti: []models.Cliente{{ID: 1}, {ID: 2}}}, nil)
	suite.m.lookup.On("Channels", mock.Anything).
		Return([]models.Channel{{LookupItem: lookupItem(1, "EMAIL")}, {LookupItem: lookupItem(2, "TELEFONO")}}, nil)
	suite.m.lookup.On("Priorities", mock.Anything).
		Return([]models.Priority{{LookupItem: lookupItem(5, "ALTA")}, {LookupItem: lookupItem(6, "NORMALE")}}, nil)
	suite.m.lookup.On("Departments", mock.Anything).Return([]models.Department{}, nil)
}

func (suite *TicketFormTestSuite) TestOpenAppliesDefaults() {
	suite.expectLookups()

	view := suite.form.Open(suite.ctx)

	require.NotNil(suite.T(), view.Fields.CanaleID)
	require.NotNil(suite.T(), view.Fields.PrioritaID)
	assert.Equal(suite.T(), int64(1), *view.Fields.CanaleID)
	assert.Equal(suite.T(), int64(6), *view.Fields.PrioritaID)
	assert.Len(suite.T(), view.Clienti, 2)
	assert.Empty(suite.T(), view.Error)
}

func (suite *TicketFormTestSuite) TestOpenReportsLoadFailure() {
	suite.m.clients.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	suite.m.lookup.On("Channels", mock.Anything).Return([]models.Channel{}, nil).Maybe()
	suite.m.lookup.On("Priorities", mock.Anything).Return([]models.Priority{}, nil).Maybe()
	suite.m.lookup.On("Departments", mock.Anything).Return([]models.Department{}, nil).Maybe()

	view := suite.form.Open(suite.ctx)
	assert.Equal(suite.T(), MsgLoadFailed, view.Error)
}

func (suite *TicketFormTestSuite) TestSelectClientLoadsActiveContracts() {
	suite.m.clients.On("Referenti", mock.Anything, int64(2)).Return([]models.Referente{{ID: 20}}, nil)
	suite.m.clients.On("Contratti", mock.Anything, int64(2)).Return([]models.Contratto{
		{ID: 1, Attivo: true, DataFine: str("2030-01-01")},
		{ID: 2, Attivo: false, DataFine: str("2030-01-01")},
		{ID: 3, Attivo: true, DataFine: str("2024-05-31")},
	}, nil)

	view := suite.form.SelectClient(suite.ctx, 2)

	assert.Equal(suite.T(), int64(2), view.Fields.ClienteID)
	assert.Len(suite.T(), view.Referenti, 1)
	require.Len(suite.T(), view.Contratti, 1)
	assert.Equal(suite.T(), int64(1), view.Contratti[0].ID)
}

func (suite *TicketFormTestSuite) TestSelectNoClientClearsDependents() {
	suite.m.clients.On("Referenti", mock.Anything, int64(2)).Return([]models.Referente{{ID: 20}}, nil)
	suite.m.clients.On("Contratti", mock.Anything, int64(2)).Return([]models.Contratto{}, nil)
	suite.form.SelectClient(suite.ctx, 2)

	view := suite.form.SelectClient(suite.ctx, 0)

	assert.Empty(suite.T(), view.Referenti)
	assert.Empty(suite.T(), view.Contratti)
	assert.Nil(suite.T(), view.Fields.ReferenteID)
	suite.m.clients.AssertNumberOfCalls(suite.T(), "Referenti", 1)
}

func (suite *TicketFormTestSuite) TestStaleClientResponseIsDiscarded() {
	started := make(chan struct{})
	release := make(chan struct{})
	suite.m.clients.On("Referenti", mock.Anything, int64(1)).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]models.Referente{{ID: 10}}, nil)
	suite.m.clients.On("Contratti", mock.Anything, int64(1)).Return([]models.Contratto{}, nil)
	suite.m.clients.On("Referenti", mock.Anything, int64(2)).Return([]models.Referente{{ID: 20}, {ID: 21}}, nil)
	suite.m.clients.On("Contratti", mock.Anything, int64(2)).Return([]models.Contratto{}, nil)

	done := make(chan *models.TicketFormView)
	go func() {
		done <- suite.form.SelectClient(suite.ctx, 1)
	}()
	<-started

	latest := suite.form.SelectClient(suite.ctx, 2)
	close(release)
	<-done

	view := suite.form.View()
	assert.Equal(suite.T(), int64(2), view.Fields.ClienteID)
	require.Len(suite.T(), view.Referenti, 2)
	assert.Equal(suite.T(), int64(20), view.Referenti[0].ID)
	assert.Equal(suite.T(), latest.Referenti, view.Referenti)
}

func (suite *TicketFormTestSuite) TestSubmitRequiresFields() {
	_, err := suite.form.Submit(suite.ctx, models.TicketCreate{Oggetto: "Stampante"})

	var verr *ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	assert.Equal(suite.T(), MsgRequiredFields, verr.Message)
	assert.Contains(suite.T(), verr.Fields, "ClienteID")
	assert.Equal(suite.T(), MsgRequiredFields, suite.form.View().Error)
	suite.m.tickets.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *TicketFormTestSuite) TestSubmitShowsBackendDetail() {
	fields := models.TicketCreate{Oggetto: "Stampante", ClienteID: 1, PrioritaID: i64(6), CanaleID: i64(1)}
	suite.m.tickets.On("Create", mock.Anything, fields).
		Return(nil, &apiclient.APIError{StatusCode: 400, Detail: "Cliente sospeso"})

	_, err := suite.form.Submit(suite.ctx, fields)
	require.Error(suite.T(), err)

	view := suite.form.View()
	assert.Equal(suite.T(), "Cliente sospeso", view.Error)
	assert.Equal(suite.T(), "Stampante", view.Fields.Oggetto)
}

func (suite *TicketFormTestSuite) TestSubmitFallbackMessage() {
	fields := models.TicketCreate{Oggetto: "Stampante", ClienteID: 1, PrioritaID: i64(6), CanaleID: i64(1)}
	suite.m.tickets.On("Create", mock.Anything, fields).Return(nil, errors.New("timeout"))

	_, err := suite.form.Submit(suite.ctx, fields)
	require.Error(suite.T(), err)
	assert.Equal(suite.T(), MsgTicketCreate, suite.form.View().Error)
}

func (suite *TicketFormTestSuite) TestSubmitResetsForm() {
	suite.expectLookups()
	suite.form.Open(suite.ctx)

	fields := models.TicketCreate{Oggetto: "Stampante", ClienteID: 1, PrioritaID: i64(5), CanaleID: i64(2)}
	suite.m.tickets.On("Create", mock.Anything, fields).Return(&models.Ticket{ID: 77, Numero: "TK-77"}, nil)

	result, err := suite.form.Submit(suite.ctx, fields)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), &models.FormResult{ID: 77, Numero: "TK-77", ReloadList: true}, result)

	view := suite.form.View()
	assert.Empty(suite.T(), view.Fields.Oggetto)
	assert.Zero(suite.T(), view.Fields.ClienteID)
	assert.Equal(suite.T(), int64(1), *view.Fields.CanaleID)
	assert.Equal(suite.T(), int64(6), *view.Fields.PrioritaID)
	assert.Empty(suite.T(), view.Error)
}

func TestInterventionFormDefaults(t *testing.T) {
	m := newMockBackend()
	m.clients.On("List", mock.Anything, models.ClienteFilters{Limit: 100}).Return(&models.ClienteListResponse{}, nil)
	m.lookup.On("InterventionTypes", mock.Anything).
		Return([]models.InterventionType{{LookupItem: lookupItem(4, "CLIENTE")}, {LookupItem: lookupItem(5, "REMOTO")}}, nil)
	m.lookup.On("InterventionStates", mock.Anything).
		Return([]models.State{{LookupItem: lookupItem(1, "IN_CORSO")}, {LookupItem: lookupItem(2, "PIANIFICATO")}}, nil)
	m.lookup.On("InterventionOrigins", mock.Anything).
		Return([]models.InterventionOrigin{{LookupItem: lookupItem(3, "TICKET")}, {LookupItem: lookupItem(9, "SPONTANEO")}}, nil)

	form := NewInterventionForm(m.backend(), testLogger())
	view := form.Open(context.Background(), &models.User{ID: 7})

	assert.Equal(t, int64(4), view.Fields.TipoInterventoID)
	assert.Equal(t, int64(2), view.Fields.StatoID)
	assert.Equal(t, int64(9), view.Fields.OrigineID)
	assert.Equal(t, int64(7), view.Fields.TecnicoID)
}

func TestInterventionFormListsOnlyOpenTickets(t *testing.T) {
	m := newMockBackend()
	m.tickets.On("List", mock.Anything, models.TicketFilters{Page: 1, Limit: 50, ClienteID: i64(4)}).
		Return(&models.TicketListResponse{Tickets: []models.Ticket{
			{ID: 1, Stato: &models.StatoRef{Codice: "NUOVO"}},
			{ID: 2, Stato: &models.StatoRef{Codice: models.TicketStatoChiuso}},
			{ID: 3, Stato: &models.StatoRef{Codice: models.TicketStatoAnnullato}},
			{ID: 4},
		}}, nil)

	form := NewInterventionForm(m.backend(), testLogger())
	view := form.SelectClient(context.Background(), 4)

	require.Len(t, view.Tickets, 2)
	assert.Equal(t, int64(1), view.Tickets[0].ID)
	assert.Equal(t, int64(4), view.Tickets[1].ID)

	view = form.SelectClient(context.Background(), 0)
	assert.Empty(t, view.Tickets)
	assert.Nil(t, view.Fields.TicketID)
}

func TestInterventionFormSubmit(t *testing.T) {
	m := newMockBackend()
	form := NewInterventionForm(m.backend(), testLogger())

	_, err := form.Submit(context.Background(), models.InterventoCreate{})
	assert.ErrorIs(t, err, ErrValidation)

	fields := models.InterventoCreate{ClienteID: 1, TecnicoID: 7, TipoInterventoID: 4, StatoID: 2, OrigineID: 9, Oggetto: "Sostituzione toner"}
	m.interventions.On("Create", mock.Anything, fields).Return(&models.Intervento{ID: 31, Numero: "INT-31"}, nil)

	result, err := form.Submit(context.Background(), fields)
	require.NoError(t, err)
	assert.Equal(t, int64(31), result.ID)
	assert.True(t, result.ReloadList)
	assert.Empty(t, form.View().Fields.Oggetto)
}
