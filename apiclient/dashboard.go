package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type DashboardAPI struct {
	client *Client
}

func (a *DashboardAPI) Get(ctx context.Context) (*models.DashboardData, error) {
	var out models.DashboardData
	if err := a.client.do(ctx, http.MethodGet, "/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
