package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"docvault/internal/service"
)

type AuthHandler struct {
	auth AuthOperations
}

func NewAuthHandler(auth AuthOperations) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignupResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	u, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Name:     strings.TrimSpace(req.Name),
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	token, _, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, SignupResponse{
		UserID: u.ID.String(),
		Email:  u.Email,
		Token:  token,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	token, u, err := h.auth.Login(c.Request().Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		UserID: u.ID.String(),
		Token:  token,
	})
}
