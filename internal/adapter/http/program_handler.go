package http

import (
	"net/http"

	progUC "agricredit-backend/internal/usecase/program"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProgramHandler struct{ uc *progUC.Usecase }

func NewProgramHandler(uc *progUC.Usecase) *ProgramHandler { return &ProgramHandler{uc: uc} }

type createProgramReq struct {
	Name          string          `json:"name"          validate:"notblank,max=150"`
	Description   string          `json:"description"   validate:"max=5000"`
	MinAmount     decimal.Decimal `json:"minAmount"     validate:"gt=0,dec2"`
	MaxAmount     decimal.Decimal `json:"maxAmount"     validate:"gt=0,dec2"`
	MinTermMonths int             `json:"minTermMonths" validate:"gte=1,lte=360"`
	MaxTermMonths int             `json:"maxTermMonths" validate:"gte=1,lte=360"`
	InterestRate  decimal.Decimal `json:"interestRate"  validate:"gte=0,lte=100"`
	MaxEffortRate decimal.Decimal `json:"maxEffortRate" validate:"gte=0,lte=100"`
	ProcessingFee decimal.Decimal `json:"processingFee" validate:"gte=0,lte=100"`
	InstitutionID string          `json:"institutionId" validate:"omitempty,uuid"`
}

func (h *ProgramHandler) Create(c echo.Context) error {
	var req createProgramReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Create(c.Request().Context(), principal(c), progUC.CreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

type updateProgramReq struct {
	Name          *string          `json:"name"          validate:"omitempty,notblank,max=150"`
	Description   *string          `json:"description"   validate:"omitempty,max=5000"`
	MinAmount     *decimal.Decimal `json:"minAmount"`
	MaxAmount     *decimal.Decimal `json:"maxAmount"`
	MinTermMonths *int             `json:"minTermMonths" validate:"omitempty,gte=1,lte=360"`
	MaxTermMonths *int             `json:"maxTermMonths" validate:"omitempty,gte=1,lte=360"`
	InterestRate  *decimal.Decimal `json:"interestRate"`
	MaxEffortRate *decimal.Decimal `json:"maxEffortRate"`
	ProcessingFee *decimal.Decimal `json:"processingFee"`
}

// Update leaves range checks on the pointer decimals to the program itself.
func (h *ProgramHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateProgramReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p, err := h.uc.Update(c.Request().Context(), principal(c), id, progUC.UpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProgramHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.Toggle(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProgramHandler) ListActive(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *ProgramHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

// Get is public; a signed-in caller may also see their own inactive programs.
func (h *ProgramHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.uc.Get(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
