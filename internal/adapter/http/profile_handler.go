package http

import (
	"net/http"

	profUC "agricredit-backend/internal/usecase/profile"

	"github.com/labstack/echo/v4"
)

type ProfileHandler struct{ uc *profUC.Usecase }

func NewProfileHandler(uc *profUC.Usecase) *ProfileHandler { return &ProfileHandler{uc: uc} }

func (h *ProfileHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *ProfileHandler) Permissions(c echo.Context) error {
	out, err := h.uc.ListPermissions(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

type createProfileReq struct {
	Name        string   `json:"name"        validate:"notblank,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Permissions []string `json:"permissions" validate:"dive,notblank"`
}

func (h *ProfileHandler) Create(c echo.Context) error {
	var req createProfileReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Create(c.Request().Context(), principal(c), profUC.CreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

type updateProfileReq struct {
	Name        *string   `json:"name"        validate:"omitempty,notblank,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool     `json:"isActive"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,notblank"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateProfileReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Update(c.Request().Context(), principal(c), id, profUC.UpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
