package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type TechniciansAPI struct {
	client *Client
}

func (a *TechniciansAPI) List(ctx context.Context, filters models.TechnicianFilters) (*models.TechnicianListResponse, error) {
	var out models.TechnicianListResponse
	if err := a.client.do(ctx, http.MethodGet, "/technicians", filters, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *TechniciansAPI) Get(ctx context.Context, id int64) (*models.Technician, error) {
	return a.technician(ctx, http.MethodGet, idPath("/technicians/%d", id), nil)
}

func (a *TechniciansAPI) Create(ctx context.Context, data models.TechnicianCreate) (*models.Technician, error) {
	return a.technician(ctx, http.MethodPost, "/technicians", data)
}

// Update replaces the technician with PUT; nil fields are left unchanged by the backend
func (a *TechniciansAPI) Update(ctx context.Context, id int64, data models.TechnicianUpdate) (*models.Technician, error) {
	return a.technician(ctx, http.MethodPut, idPath("/technicians/%d", id), data)
}

func (a *TechniciansAPI) Delete(ctx context.Context, id int64) error {
	return a.client.do(ctx, http.MethodDelete, idPath("/technicians/%d", id), nil, nil, nil)
}

func (a *TechniciansAPI) technician(ctx context.Context, method, path string, body interface{}) (*models.Technician, error) {
	var out models.Technician
	if err := a.client.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
