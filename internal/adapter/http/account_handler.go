package http

import (
	"net/http"

	accUC "agricredit-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type AccountHandler struct{ uc *accUC.Usecase }

func NewAccountHandler(uc *accUC.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

func (h *AccountHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *AccountHandler) ListForInstitution(c echo.Context) error {
	out, err := h.uc.ListForInstitution(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *AccountHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	a, err := h.uc.Get(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

type payReq struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0,dec2"`
}

func (h *AccountHandler) Pay(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req payReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Pay(c.Request().Context(), principal(c), id, accUC.PayInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AccountHandler) Payments(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListPayments(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
