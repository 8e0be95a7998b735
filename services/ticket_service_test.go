package services

import (
	"context"
	"daassist-web/apiclient"
	"daassist-web/models"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TicketServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	m       *mockBackend
	service *TicketService
}

func (suite *TicketServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.m = newMockBackend()
	suite.service = NewTicketService(suite.m.backend(), testLogger())
}

func TestTicketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TicketServiceTestSuite))
}

// expectDetail stubs the reload of ticket 10 belonging to client 4
func (suite *TicketServiceTestSuite) expectDetail() {
	suite.m.tickets.On("Get", mock.Anything, int64(10)).Return(&models.Ticket{
		ID:       10,
		Numero:   "TK-10",
		Cliente:  &models.ClienteRef{ID: 4, RagioneSociale: "ACME"},
		Stato:    &models.StatoRef{ID: 1, Codice: "NUOVO", Descrizione: "Nuovo"},
		Priorita: &models.PrioritaRef{ID: 2, Codice: "CRITICA", Descrizione: "Critica"},
	}, nil)
	suite.m.lookup.On("TicketStates", mock.Anything).Return([]models.State{{LookupItem: lookupItem(1, "NUOVO")}}, nil)
	suite.m.clients.On("Contratti", mock.Anything, int64(4)).Return([]models.Contratto{}, nil)
	suite.m.clients.On("Referenti", mock.Anything, int64(4)).Return([]models.Referente{{ID: 8}}, nil)
	suite.m.auth.On("Tecnici", mock.Anything).Return([]models.Tecnico{{ID: 3}}, nil)
	suite.m.interventions.On("List", mock.Anything, models.InterventoFilters{TicketID: i64(10), Limit: 100}).
		Return(&models.InterventoListResponse{Interventi: []models.Intervento{{ID: 50, Numero: "INT-50"}}}, nil)
}

func (suite *TicketServiceTestSuite) TestDetailLoadsDependents() {
	suite.expectDetail()

	view, err := suite.service.Detail(suite.ctx, 10)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "TK-10", view.Ticket.Numero)
	assert.Equal(suite.T(), "CRITICA", view.PrioritaBadge.Code)
	assert.Contains(suite.T(), view.PrioritaBadge.Class, "red")
	assert.Len(suite.T(), view.Referenti, 1)
	require.Len(suite.T(), view.Interventi, 1)
	assert.Equal(suite.T(), "INT-50", view.Interventi[0].Numero)
	assert.Nil(suite.T(), view.ActiveContract)
	assert.Equal(suite.T(), CloseTypes, view.CloseTypes)
}

func (suite *TicketServiceTestSuite) TestDetailWithoutClientSkipsClientCalls() {
	suite.m.tickets.On("Get", mock.Anything, int64(11)).Return(&models.Ticket{ID: 11}, nil)
	suite.m.lookup.On("TicketStates", mock.Anything).Return([]models.State{}, nil)
	suite.m.auth.On("Tecnici", mock.Anything).Return([]models.Tecnico{}, nil)
	suite.m.interventions.On("List", mock.Anything, mock.Anything).Return(&models.InterventoListResponse{}, nil)

	view, err := suite.service.Detail(suite.ctx, 11)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), view.Contratti)
	assert.Empty(suite.T(), view.Referenti)
	suite.m.clients.AssertNotCalled(suite.T(), "Contratti", mock.Anything, mock.Anything)
}

func (suite *TicketServiceTestSuite) TestDetailNotFound() {
	suite.m.tickets.On("Get", mock.Anything, int64(99)).Return(nil, &apiclient.APIError{StatusCode: 404})

	_, err := suite.service.Detail(suite.ctx, 99)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *TicketServiceTestSuite) TestUnassignSendsExplicitNull() {
	suite.expectDetail()
	suite.m.tickets.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(u models.TicketUpdate) bool {
		body, err := json.Marshal(u)
		return err == nil && string(body) == `{"tecnico_assegnato_id":null}`
	})).Return(&models.Ticket{ID: 10}, nil).Once()

	_, err := suite.service.SetTechnician(suite.ctx, 10, nil)
	require.NoError(suite.T(), err)
	suite.m.tickets.AssertExpectations(suite.T())
}

func (suite *TicketServiceTestSuite) TestChangeStateReloads() {
	suite.expectDetail()
	suite.m.tickets.On("Update", mock.Anything, int64(10), models.TicketUpdate{StatoID: i64(3)}).
		Return(&models.Ticket{ID: 10}, nil).Once()

	view, err := suite.service.ChangeState(suite.ctx, 10, 3)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(10), view.Ticket.ID)
	suite.m.tickets.AssertNumberOfCalls(suite.T(), "Get", 1)
}

func (suite *TicketServiceTestSuite) TestCloseRequiresKnownType() {
	_, err := suite.service.Close(suite.ctx, 10, models.TicketClose{TipoChiusura: "BOH"})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	suite.m.tickets.AssertNotCalled(suite.T(), "Close", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TicketServiceTestSuite) TestCloseWithNote() {
	suite.expectDetail()
	req := models.TicketClose{TipoChiusura: models.ChiusuraRisolto, NoteChiusura: str("ok")}
	suite.m.tickets.On("Close", mock.Anything, int64(10), req).Return(&models.Ticket{ID: 10}, nil).Once()

	_, err := suite.service.Close(suite.ctx, 10, req)
	require.NoError(suite.T(), err)
}

func (suite *TicketServiceTestSuite) TestScheduleInterventionReturnsResultAndTicket() {
	suite.expectDetail()
	suite.m.tickets.On("ScheduleIntervention", mock.Anything, int64(10)).
		Return(&models.ScheduleInterventionResult{RichiestaID: 4, TicketID: 10}, nil)

	view, err := suite.service.ScheduleIntervention(suite.ctx, 10)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), view.Result.RichiestaID)
	assert.Equal(suite.T(), int64(10), view.Ticket.Ticket.ID)
}

func (suite *TicketServiceTestSuite) TestListForwardsFilters() {
	suite.m.tickets.On("List", mock.Anything, models.TicketFilters{Page: 2, Limit: 20, StatoID: i64(1), Search: "stampante"}).
		Return(&models.TicketListResponse{Total: 21, Tickets: []models.Ticket{{ID: 1}}}, nil)

	view, err := suite.service.List(suite.ctx, ListQuery[models.TicketFilters]{
		Page:    2,
		Search:  "stampante",
		Filters: models.TicketFilters{StatoID: i64(1)},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, view.Pagination.TotalPages)
	require.Len(suite.T(), view.Rows, 1)
	assert.False(suite.T(), view.Pagination.HasNext)
	assert.Equal(suite.T(), "stampante", view.Filters.Search)
}

func (suite *TicketServiceTestSuite) TestFilterOptions() {
	suite.m.lookup.On("TicketStates", mock.Anything).Return([]models.State{{LookupItem: lookupItem(1, "NUOVO")}}, nil)
	suite.m.lookup.On("Priorities", mock.Anything).Return([]models.Priority{{LookupItem: lookupItem(2, "ALTA")}}, nil)
	suite.m.clients.On("List", mock.Anything, models.ClienteFilters{Limit: 1000}).
		Return(&models.ClienteListResponse{Clienti: []models.Cliente{{ID: 4}}}, nil)
	suite.m.auth.On("Tecnici", mock.Anything).Return([]models.Tecnico{{ID: 3}}, nil)

	options, err := suite.service.FilterOptions(suite.ctx)
	require.NoError(suite.T(), err)

	assert.Len(suite.T(), options.Stati, 1)
	assert.Len(suite.T(), options.Priorita, 1)
	assert.Len(suite.T(), options.Clienti, 1)
	assert.Len(suite.T(), options.Tecnici, 1)
}

func (suite *TicketServiceTestSuite) TestFilterOptionsFailsOnFirstError() {
	suite.m.lookup.On("TicketStates", mock.Anything).Return(nil, &apiclient.APIError{StatusCode: 500})
	suite.m.lookup.On("Priorities", mock.Anything).Return([]models.Priority{}, nil).Maybe()
	suite.m.clients.On("List", mock.Anything, mock.Anything).Return(&models.ClienteListResponse{}, nil).Maybe()
	suite.m.auth.On("Tecnici", mock.Anything).Return([]models.Tecnico{}, nil).Maybe()

	options, err := suite.service.FilterOptions(suite.ctx)
	assert.Nil(suite.T(), options)
	assert.True(suite.T(), apiclient.IsStatus(err, 500))
}
