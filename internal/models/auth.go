// Входные/выходные модели REST-слоя; зеркалят схемы upstream-API.
package models

// LoginRequest — форма входа из браузера.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse — ответ консоли на вход: токены наружу не отдаются,
// браузер получает только факт успеха и профиль.
type LoginResponse struct {
	OK   bool  `json:"ok"`
	User *User `json:"user,omitempty"`
}

// TokenPairResponse — ответ upstream на login/refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LogoutRequest — тело запроса upstream-ревокации (оба токена, best-effort).
type LogoutRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest — тело запроса обновления access-токена.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
