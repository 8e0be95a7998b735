package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type ClientsAPI struct {
	client *Client
}

func (a *ClientsAPI) List(ctx context.Context, filters models.ClienteFilters) (*models.ClienteListResponse, error) {
	var out models.ClienteListResponse
	if err := a.client.do(ctx, http.MethodGet, "/clients", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ClientsAPI) Get(ctx context.Context, id int64) (*models.ClienteDetail, error) {
	var out models.ClienteDetail
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ClientsAPI) Contratti(ctx context.Context, id int64) ([]models.Contratto, error) {
	var out []models.Contratto
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d/contratti", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ClientsAPI) Referenti(ctx context.Context, id int64) ([]models.Referente, error) {
	var out []models.Referente
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d/referenti", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ClientsAPI) Sedi(ctx context.Context, id int64) ([]models.SedeCliente, error) {
	var out []models.SedeCliente
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d/sites", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Contatti lists contacts, narrowed to one site when filters.SedeID is set
func (a *ClientsAPI) Contatti(ctx context.Context, id int64, filters models.ContattiFilters) ([]models.Referente, error) {
	var out []models.Referente
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d/contacts", id), filters, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *ClientsAPI) Stats(ctx context.Context, id int64) (*models.ClienteStats, error) {
	var out models.ClienteStats
	if err := a.client.do(ctx, http.MethodGet, idPath("/clients/%d/stats", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
