package http

import (
	"net/http"

	"agricredit-backend/internal/domain/application"
	appUC "agricredit-backend/internal/usecase/application"
	docUC "agricredit-backend/internal/usecase/document"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct {
	uc   *appUC.Usecase
	docs *docUC.Usecase
}

func NewApplicationHandler(uc *appUC.Usecase, docs *docUC.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, docs: docs}
}

type submitReq struct {
	CreditProgramID       *string         `json:"creditProgramId"       validate:"omitempty,uuid"`
	ProjectName           string          `json:"projectName"           validate:"notblank,max=200"`
	ProjectType           string          `json:"projectType"           validate:"required,oneof=crop_production livestock agro_processing equipment irrigation other"`
	Description           string          `json:"description"           validate:"max=5000"`
	Amount                decimal.Decimal `json:"amount"                validate:"gt=0,dec2"`
	TermMonths            int             `json:"termMonths"            validate:"gte=1,lte=360"`
	MonthlyIncome         decimal.Decimal `json:"monthlyIncome"         validate:"gt=0,dec2"`
	ExpectedProjectIncome decimal.Decimal `json:"expectedProjectIncome" validate:"gte=0,dec2"`
	MonthlyExpenses       decimal.Decimal `json:"monthlyExpenses"       validate:"gte=0,dec2"`
	OtherDebts            decimal.Decimal `json:"otherDebts"            validate:"gte=0,dec2"`
	FamilySize            int             `json:"familySize"            validate:"gte=0,lte=100"`
	ExperienceYears       int             `json:"experienceYears"       validate:"gte=0,lte=100"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitReq
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.uc.Submit(c.Request().Context(), principal(c), appUC.SubmitInput{
		CreditProgramID:       req.CreditProgramID,
		ProjectName:           req.ProjectName,
		ProjectType:           application.ProjectType(req.ProjectType),
		Description:           req.Description,
		Amount:                req.Amount,
		TermMonths:            req.TermMonths,
		MonthlyIncome:         req.MonthlyIncome,
		ExpectedProjectIncome: req.ExpectedProjectIncome,
		MonthlyExpenses:       req.MonthlyExpenses,
		OtherDebts:            req.OtherDebts,
		FamilySize:            req.FamilySize,
		ExperienceYears:       req.ExperienceYears,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *ApplicationHandler) ListForInstitution(c echo.Context) error {
	out, err := h.uc.ListForInstitution(c.Request().Context(), principal(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(out))
}

func (h *ApplicationHandler) Get(c echo.Context) error {
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

func (h *ApplicationHandler) Documents(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := h.docs.ListByApplication(c.Request().Context(), principal(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

type transitionReq struct {
	Status          string `json:"status"          validate:"required,oneof=under_review approved rejected"`
	RejectionReason string `json:"rejectionReason" validate:"max=2000"`
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req transitionReq
	if err := bind(c, &req); err != nil {
		return err
	}
	res, err := h.uc.Transition(c.Request().Context(), principal(c), id, appUC.TransitionInput{
		Status:          application.Status(req.Status),
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// nonNil keeps empty lists as [] in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
