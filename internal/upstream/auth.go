package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lumed/spectra-console/internal/models"
)

// Пути auth-эндпойнтов; точные маршруты принадлежат upstream,
// консоль относится к ним как к непрозрачным константам.
const (
	pathAuthLogin   = "/api/v1/auth/login"
	pathAuthRefresh = "/api/v1/auth/refresh"
	pathAuthLogout  = "/api/v1/auth/logout"
	pathAuthWhoAmI  = "/api/v1/auth/whoami"
)

// AuthClient — вызовы auth-эндпойнтов upstream. Работает поверх «голого»
// Do: авто-обновление токена здесь неуместно (им управляет session.Manager).
type AuthClient struct {
	tr *Transport
}

// NewAuthClient создаёт клиент auth-эндпойнтов.
func NewAuthClient(tr *Transport) *AuthClient { return &AuthClient{tr: tr} }

// Login обменивает учётные данные на пару токенов.
func (a *AuthClient) Login(ctx context.Context, creds models.LoginRequest) (models.TokenPairResponse, *Fault, error) {
	const op = "upstream.AuthClient.Login"

	res, err := a.tr.Do(ctx, http.MethodPost, pathAuthLogin, creds, WithoutAuth())
	if err != nil {
		return models.TokenPairResponse{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return models.TokenPairResponse{}, res.Fault, nil
	}

	var pair models.TokenPairResponse
	if err := json.Unmarshal(res.Body, &pair); err != nil {
		return models.TokenPairResponse{}, nil, fmt.Errorf("%s: malformed response: %w", op, err)
	}

	return pair, nil, nil
}

// Refresh выпускает новый access-токен по refresh-токену.
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (models.TokenPairResponse, *Fault, error) {
	const op = "upstream.AuthClient.Refresh"

	body := models.RefreshRequest{RefreshToken: refreshToken}

	res, err := a.tr.Do(ctx, http.MethodPost, pathAuthRefresh, body, WithoutAuth())
	if err != nil {
		return models.TokenPairResponse{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return models.TokenPairResponse{}, res.Fault, nil
	}

	var pair models.TokenPairResponse
	if err := json.Unmarshal(res.Body, &pair); err != nil {
		return models.TokenPairResponse{}, nil, fmt.Errorf("%s: malformed response: %w", op, err)
	}

	return pair, nil, nil
}

// Logout просит upstream отозвать оба токена.
func (a *AuthClient) Logout(ctx context.Context, access, refresh string) (*Fault, error) {
	const op = "upstream.AuthClient.Logout"

	body := models.LogoutRequest{AccessToken: access, RefreshToken: refresh}

	res, err := a.tr.Do(ctx, http.MethodPost, pathAuthLogout, body, WithoutAuth())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return res.Fault, nil
}

// WhoAmI возвращает профиль аутентифицированного пользователя.
func (a *AuthClient) WhoAmI(ctx context.Context) (models.User, *Fault, error) {
	const op = "upstream.AuthClient.WhoAmI"

	res, err := a.tr.Do(ctx, http.MethodGet, pathAuthWhoAmI, nil)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Fault != nil {
		return models.User{}, res.Fault, nil
	}

	var u models.User
	if err := json.Unmarshal(res.Body, &u); err != nil {
		return models.User{}, nil, fmt.Errorf("%s: malformed response: %w", op, err)
	}

	return u, nil, nil
}
