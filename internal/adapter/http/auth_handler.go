package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authUC "disaster-intake-api/internal/usecase/auth"
)

type AuthHandler struct{ uc *authUC.Usecase }

func NewAuthHandler(uc *authUC.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type loginReq struct {
	Code     int    `json:"code"`
	Password string `json:"password" validate:"required"`
}

// Login answers with the same shape for a wrong password and an unknown
// code; nothing reveals which field failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "_", Message: "invalid body"}}})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeValidationFailed,
			Details: ToFieldErrors(err),
		})
	}

	token, ok, err := h.uc.Login(c.Request().Context(), req.Code, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"success": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
	})
}

// Logout revokes the presented bearer token. Revoking a token that was
// never issued is not an error; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	const prefix = "Bearer "
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		if token := strings.TrimSpace(header[len(prefix):]); token != "" {
			if err := h.uc.Logout(c.Request().Context(), token); err != nil {
				return writeError(c, err)
			}
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

// ListUsers returns ids and administrative codes; passwords never leave
// the server.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	accounts, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"text": accounts})
}
