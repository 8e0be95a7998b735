package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type InterventionsAPI struct {
	client *Client
}

func (a *InterventionsAPI) List(ctx context.Context, filters models.InterventoFilters) (*models.InterventoListResponse, error) {
	var out models.InterventoListResponse
	if err := a.client.do(ctx, http.MethodGet, "/interventions", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *InterventionsAPI) Get(ctx context.Context, id int64) (*models.Intervento, error) {
	return a.intervento(ctx, http.MethodGet, idPath("/interventions/%d", id), nil)
}

func (a *InterventionsAPI) Create(ctx context.Context, data models.InterventoCreate) (*models.Intervento, error) {
	return a.intervento(ctx, http.MethodPost, "/interventions", data)
}

func (a *InterventionsAPI) Update(ctx context.Context, id int64, data models.InterventoUpdate) (*models.Intervento, error) {
	return a.intervento(ctx, http.MethodPatch, idPath("/interventions/%d", id), data)
}

func (a *InterventionsAPI) Start(ctx context.Context, id int64, data models.InterventoStart) (*models.Intervento, error) {
	return a.intervento(ctx, http.MethodPost, idPath("/interventions/%d/start", id), data)
}

func (a *InterventionsAPI) Complete(ctx context.Context, id int64, data models.InterventoComplete) (*models.Intervento, error) {
	return a.intervento(ctx, http.MethodPost, idPath("/interventions/%d/complete", id), data)
}

func (a *InterventionsAPI) AddAttivita(ctx context.Context, id int64, data models.AttivitaCreate) (*models.Attivita, error) {
	var out models.Attivita
	if err := a.client.do(ctx, http.MethodPost, idPath("/interventions/%d/attivita", id), nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *InterventionsAPI) Delete(ctx context.Context, id int64) error {
	return a.client.do(ctx, http.MethodDelete, idPath("/interventions/%d", id), nil, nil, nil)
}

func (a *InterventionsAPI) Sessions(ctx context.Context, id int64) ([]models.SessioneLavoro, error) {
	var out []models.SessioneLavoro
	if err := a.client.do(ctx, http.MethodGet, idPath("/interventions/%d/sessions", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *InterventionsAPI) AddSession(ctx context.Context, id int64, data models.SessioneCreate) (*models.SessioneLavoro, error) {
	var out models.SessioneLavoro
	if err := a.client.do(ctx, http.MethodPost, idPath("/interventions/%d/sessions", id), nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *InterventionsAPI) UpdateSession(ctx context.Context, id, sessionID int64, data models.SessioneUpdate) (*models.SessioneLavoro, error) {
	var out models.SessioneLavoro
	if err := a.client.do(ctx, http.MethodPatch, idPath("/interventions/%d/sessions/%d", id, sessionID), nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *InterventionsAPI) DeleteSession(ctx context.Context, id, sessionID int64) error {
	return a.client.do(ctx, http.MethodDelete, idPath("/interventions/%d/sessions/%d", id, sessionID), nil, nil, nil)
}

func (a *InterventionsAPI) Rows(ctx context.Context, id int64) ([]models.RigaAttivita, error) {
	var out []models.RigaAttivita
	if err := a.client.do(ctx, http.MethodGet, idPath("/interventions/%d/rows", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *InterventionsAPI) UpdateRow(ctx context.Context, id, rowID int64, data models.RigaAttivitaUpdate) (*models.RigaAttivita, error) {
	var out models.RigaAttivita
	if err := a.client.do(ctx, http.MethodPatch, idPath("/interventions/%d/rows/%d", id, rowID), nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *InterventionsAPI) DeleteRow(ctx context.Context, id, rowID int64) error {
	return a.client.do(ctx, http.MethodDelete, idPath("/interventions/%d/rows/%d", id, rowID), nil, nil, nil)
}

func (a *InterventionsAPI) intervento(ctx context.Context, method, path string, body interface{}) (*models.Intervento, error) {
	var out models.Intervento
	if err := a.client.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
