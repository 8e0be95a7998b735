package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
)

type LookupAPI struct {
	client *Client
}

func getList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *LookupAPI) Channels(ctx context.Context) ([]models.Channel, error) {
	return getList[models.Channel](ctx, a.client, "/lookup/channels")
}

func (a *LookupAPI) Priorities(ctx context.Context) ([]models.Priority, error) {
	return getList[models.Priority](ctx, a.client, "/lookup/priorities")
}

func (a *LookupAPI) TicketStates(ctx context.Context) ([]models.State, error) {
	return getList[models.State](ctx, a.client, "/lookup/ticket-states")
}

func (a *LookupAPI) InterventionStates(ctx context.Context) ([]models.State, error) {
	return getList[models.State](ctx, a.client, "/lookup/intervention-states")
}

func (a *LookupAPI) InterventionTypes(ctx context.Context) ([]models.InterventionType, error) {
	return getList[models.InterventionType](ctx, a.client, "/lookup/intervention-types")
}

func (a *LookupAPI) ActivityCategories(ctx context.Context) ([]models.ActivityCategory, error) {
	return getList[models.ActivityCategory](ctx, a.client, "/lookup/activity-categories")
}

func (a *LookupAPI) InterventionOrigins(ctx context.Context) ([]models.InterventionOrigin, error) {
	return getList[models.InterventionOrigin](ctx, a.client, "/lookup/intervention-origins")
}

func (a *LookupAPI) Departments(ctx context.Context) ([]models.Department, error) {
	return getList[models.Department](ctx, a.client, "/lookup/departments")
}

func (a *LookupAPI) UserRoles(ctx context.Context) ([]models.UserRole, error) {
	return getList[models.UserRole](ctx, a.client, "/lookup/user-roles")
}
