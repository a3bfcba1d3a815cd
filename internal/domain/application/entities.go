package application

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectType string

const (
	ProjectCropProduction ProjectType = "crop_production"
	ProjectLivestock      ProjectType = "livestock"
	ProjectAgroProcessing ProjectType = "agro_processing"
	ProjectEquipment      ProjectType = "equipment"
	ProjectIrrigation     ProjectType = "irrigation"
	ProjectOther          ProjectType = "other"
)

func (p ProjectType) Valid() bool {
	switch p {
	case ProjectCropProduction, ProjectLivestock, ProjectAgroProcessing, ProjectEquipment, ProjectIrrigation, ProjectOther:
		return true
	}
	return false
}

// Table: credit_applications
type Application struct {
	ID                    string          `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID                string          `gorm:"column:user_id;type:char(36);not null;index" json:"userId"`
	CreditProgramID       *string         `gorm:"column:credit_program_id;type:char(36);index" json:"creditProgramId,omitempty"`
	ProjectName           string          `gorm:"column:project_name;size:200;not null" json:"projectName"`
	ProjectType           ProjectType     `gorm:"column:project_type;size:32;not null" json:"projectType"`
	Description           string          `gorm:"column:description;type:text" json:"description"`
	Amount                decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	TermMonths            int             `gorm:"column:term_months;not null" json:"termMonths"`
	MonthlyIncome         decimal.Decimal `gorm:"column:monthly_income;type:decimal(18,2);not null" json:"monthlyIncome"`
	ExpectedProjectIncome decimal.Decimal `gorm:"column:expected_project_income;type:decimal(18,2);not null" json:"expectedProjectIncome"`
	MonthlyExpenses       decimal.Decimal `gorm:"column:monthly_expenses;type:decimal(18,2);not null" json:"monthlyExpenses"`
	OtherDebts            decimal.Decimal `gorm:"column:other_debts;type:decimal(18,2);not null" json:"otherDebts"`
	FamilySize            int             `gorm:"column:family_size;not null" json:"familySize"`
	ExperienceYears       int             `gorm:"column:experience_years;not null" json:"experienceYears"`
	Status                Status          `gorm:"column:status;size:20;not null;index" json:"status"`
	RejectionReason       *string         `gorm:"column:rejection_reason;type:text" json:"rejectionReason,omitempty"`
	ReviewedBy            *string         `gorm:"column:reviewed_by;type:char(36)" json:"reviewedBy,omitempty"`
	ApprovedBy            *string         `gorm:"column:approved_by;type:char(36)" json:"approvedBy,omitempty"`
	StatusChangedAt       time.Time       `gorm:"column:status_changed_at" json:"statusChangedAt"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Application) TableName() string { return "credit_applications" }
