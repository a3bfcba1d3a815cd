package http

import (
	"net/http"

	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Name       string  `json:"name"       validate:"notblank,max=150"`
	NationalID string  `json:"nationalId" validate:"notblank,max=32"`
	Phone      string  `json:"phone"      validate:"notblank,max=32"`
	Email      *string `json:"email"      validate:"omitempty,email,max=150"`
	Password   string  `json:"password"   validate:"required,min=8,max=72"`
	UserType   string  `json:"userType"   validate:"required,oneof=farmer company cooperative financial_institution"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Password,
		UserType:   user.Type(req.UserType),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

type loginReq struct {
	Login    string `json:"login"    validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), auth.LoginInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c echo.Context) error {
	me, err := h.uc.Me(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, me)
}

func (h *AuthHandler) Permissions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"permissions": principal(c).Permissions.Names()})
}
