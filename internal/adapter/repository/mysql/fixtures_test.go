package mysql

import (
	"context"
	"testing"
	"time"

	accountDomain "agricredit-backend/internal/domain/account"
	appDomain "agricredit-backend/internal/domain/application"
	programDomain "agricredit-backend/internal/domain/program"
	userDomain "agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.Open(t)
}

func seedUser(t *testing.T, db *gorm.DB, typ userDomain.Type, phone string) *userDomain.User {
	t.Helper()
	u := &userDomain.User{
		ID:           uuid.NewString(),
		Name:         "User " + phone,
		NationalID:   "NID-" + phone,
		Phone:        phone,
		PasswordHash: "x",
		UserType:     typ,
		IsActive:     true,
	}
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProgram(t *testing.T, db *gorm.DB, institutionID string) *programDomain.Program {
	t.Helper()
	p := &programDomain.Program{
		ID:            uuid.NewString(),
		InstitutionID: institutionID,
		Name:          "Harvest " + institutionID[:4],
		MinAmount:     decimal.NewFromInt(100_000),
		MaxAmount:     decimal.NewFromInt(2_000_000),
		MinTermMonths: 6,
		MaxTermMonths: 48,
		InterestRate:  decimal.NewFromInt(12),
		MaxEffortRate: decimal.NewFromInt(40),
		ProcessingFee: decimal.NewFromInt(1),
		IsActive:      true,
	}
	if err := NewProgramRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed program: %v", err)
	}
	return p
}

func makeApplication(userID string, programID *string) *appDomain.Application {
	return &appDomain.Application{
		ID:                    uuid.NewString(),
		UserID:                userID,
		CreditProgramID:       programID,
		ProjectName:           "Maize expansion",
		ProjectType:           appDomain.ProjectCropProduction,
		Amount:                decimal.NewFromInt(450_000),
		TermMonths:            18,
		MonthlyIncome:         decimal.NewFromInt(200_000),
		ExpectedProjectIncome: decimal.NewFromInt(60_000),
		MonthlyExpenses:       decimal.NewFromInt(50_000),
		OtherDebts:            decimal.Zero,
		FamilySize:            4,
		ExperienceYears:       6,
		Status:                appDomain.StatusPending,
		StatusChangedAt:       time.Now().UTC(),
	}
}

func seedApplication(t *testing.T, db *gorm.DB, userID string, programID *string) *appDomain.Application {
	t.Helper()
	a := makeApplication(userID, programID)
	if err := NewApplicationRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

func makeAccount(app *appDomain.Application, institutionID string) *accountDomain.Account {
	return &accountDomain.Account{
		ID:                 uuid.NewString(),
		ApplicationID:      app.ID,
		UserID:             app.UserID,
		InstitutionID:      institutionID,
		Principal:          app.Amount,
		InterestRate:       decimal.NewFromInt(15),
		TermMonths:         app.TermMonths,
		TotalAmount:        decimal.RequireFromString("505316.70"),
		OutstandingBalance: decimal.RequireFromString("505316.70"),
		MonthlyPayment:     decimal.RequireFromString("28073.15"),
		NextPaymentDate:    time.Now().UTC().AddDate(0, 1, 0),
		Status:             accountDomain.StatusActive,
		IsActive:           true,
	}
}
