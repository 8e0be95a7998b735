package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type TicketsAPI struct {
	client *Client
}

func (a *TicketsAPI) List(ctx context.Context, filters models.TicketFilters) (*models.TicketListResponse, error) {
	var out models.TicketListResponse
	if err := a.client.do(ctx, http.MethodGet, "/tickets", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *TicketsAPI) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodGet, idPath("/tickets/%d", id), nil)
}

func (a *TicketsAPI) Create(ctx context.Context, data models.TicketCreate) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodPost, "/tickets", data)
}

func (a *TicketsAPI) Update(ctx context.Context, id int64, data models.TicketUpdate) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodPatch, idPath("/tickets/%d", id), data)
}

func (a *TicketsAPI) Assign(ctx context.Context, id int64, data models.TicketAssign) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodPost, idPath("/tickets/%d/assign", id), data)
}

// Take assigns the ticket to the current user
func (a *TicketsAPI) Take(ctx context.Context, id int64) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodPost, idPath("/tickets/%d/take", id), nil)
}

func (a *TicketsAPI) Close(ctx context.Context, id int64, data models.TicketClose) (*models.Ticket, error) {
	return a.ticket(ctx, http.MethodPost, idPath("/tickets/%d/close", id), data)
}

// AddNote adds an internal note; the created note is not needed by callers
func (a *TicketsAPI) AddNote(ctx context.Context, id int64, data models.TicketNote) error {
	return a.client.do(ctx, http.MethodPost, idPath("/tickets/%d/notes", id), nil, data, nil)
}

func (a *TicketsAPI) AddMessage(ctx context.Context, id int64, data models.TicketMessage) error {
	return a.client.do(ctx, http.MethodPost, idPath("/tickets/%d/messages", id), nil, data, nil)
}

// Delete soft-deletes the ticket
func (a *TicketsAPI) Delete(ctx context.Context, id int64) error {
	return a.client.do(ctx, http.MethodDelete, idPath("/tickets/%d", id), nil, nil, nil)
}

func (a *TicketsAPI) CreateIntervention(ctx context.Context, id int64) (*models.CreateInterventionResult, error) {
	var out models.CreateInterventionResult
	if err := a.client.do(ctx, http.MethodPost, idPath("/tickets/%d/create-intervention", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *TicketsAPI) ScheduleIntervention(ctx context.Context, id int64) (*models.ScheduleInterventionResult, error) {
	var out models.ScheduleInterventionResult
	if err := a.client.do(ctx, http.MethodPost, idPath("/tickets/%d/schedule-intervention", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *TicketsAPI) ticket(ctx context.Context, method, path string, body interface{}) (*models.Ticket, error) {
	var out models.Ticket
	if err := a.client.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
