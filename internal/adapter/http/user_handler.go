package http

import (
	"net/http"

	"agricredit-backend/internal/domain/user"
	userUC "agricredit-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *userUC.Usecase }

func NewUserHandler(uc *userUC.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

type createUserReq struct {
	Name       string  `json:"name"       validate:"notblank,max=150"`
	NationalID string  `json:"nationalId" validate:"notblank,max=32"`
	Phone      string  `json:"phone"      validate:"notblank,max=32"`
	Email      *string `json:"email"      validate:"omitempty,email,max=150"`
	Password   string  `json:"password"   validate:"required,min=8,max=72"`
	UserType   string  `json:"userType"   validate:"omitempty,oneof=farmer company cooperative financial_institution admin"`
	ProfileID  *string `json:"profileId"  validate:"omitempty,uuid"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.uc.Create(c.Request().Context(), principal(c), userUC.CreateInput{
		Name:       req.Name,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Password,
		UserType:   user.Type(req.UserType),
		ProfileID:  req.ProfileID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

type assignProfileReq struct {
	ProfileID string `json:"profileId" validate:"required,uuid"`
}

func (h *UserHandler) AssignProfile(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req assignProfileReq
	if err := bind(c, &req); err != nil {
		return err
	}
	u, err := h.uc.AssignProfile(c.Request().Context(), principal(c), id, req.ProfileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.uc.Deactivate(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}
