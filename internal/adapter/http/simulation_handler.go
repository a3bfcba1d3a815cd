package http

import (
	"net/http"

	simUC "agricredit-backend/internal/usecase/simulation"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SimulationHandler struct{ uc *simUC.Usecase }

func NewSimulationHandler(uc *simUC.Usecase) *SimulationHandler { return &SimulationHandler{uc: uc} }

type simulateReq struct {
	Amount          decimal.Decimal `json:"amount"          validate:"gt=0,dec2"`
	TermMonths      int             `json:"termMonths"      validate:"gte=1,lte=360"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"   validate:"gte=0,dec2"`
	MonthlyExpenses decimal.Decimal `json:"monthlyExpenses" validate:"gte=0,dec2"`
	OtherDebts      decimal.Decimal `json:"otherDebts"      validate:"gte=0,dec2"`
	ExperienceYears int             `json:"experienceYears" validate:"gte=0,lte=100"`
	ProjectType     string          `json:"projectType"     validate:"omitempty,oneof=crop_production livestock agro_processing equipment irrigation other"`
	CreditProgramID *string         `json:"creditProgramId" validate:"omitempty,uuid"`
	InterestRate    decimal.Decimal `json:"interestRate"    validate:"gte=0,lte=100"`
}

func (h *SimulationHandler) Simulate(c echo.Context) error {
	var req simulateReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Simulate(c.Request().Context(), simUC.Input(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
