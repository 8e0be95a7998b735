package apiclient

import (
	"context"
	"daassist-web/models"
	"net/http"
	"net/url"
)

type AuthAPI struct {
	client *Client
}

// Login posts the credentials form-encoded, as the token endpoint expects
func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", req.Username)
	form.Set("password", req.Password)

	var out models.TokenResponse
	if err := a.client.postForm(ctx, "/auth/login", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.client.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Tecnici lists the technicians offered in assignment pickers
func (a *AuthAPI) Tecnici(ctx context.Context) ([]models.Tecnico, error) {
	var out []models.Tecnico
	if err := a.client.do(ctx, http.MethodGet, "/auth/tecnici", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout is local: it drops both tokens from storage
func (a *AuthAPI) Logout(ctx context.Context) error {
	if a.client.tokens == nil {
		return nil
	}
	if err := a.client.tokens.RemoveItem(ctx, models.AccessTokenKey); err != nil {
		return err
	}
	return a.client.tokens.RemoveItem(ctx, models.RefreshTokenKey)
}
