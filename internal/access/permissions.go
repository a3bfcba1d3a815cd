package access

import "agricredit-backend/internal/domain/user"

// Permission names, "module.action".
const (
	Wildcard = "*"

	ApplicationsCreate  = "credit_applications.create"
	ApplicationsRead    = "credit_applications.read"
	ApplicationsReadOwn = "credit_applications.read_own"
	ApplicationsReview  = "credit_applications.review"
	ApplicationsApprove = "credit_applications.approve"
	ApplicationsReject  = "credit_applications.reject"

	ProgramsRead   = "credit_programs.read"
	ProgramsCreate = "credit_programs.create"
	ProgramsUpdate = "credit_programs.update"

	AccountsRead    = "accounts.read"
	AccountsReadOwn = "accounts.read_own"
	AccountsPay     = "accounts.pay"

	DocumentsUpload  = "documents.upload"
	DocumentsRead    = "documents.read"
	DocumentsReadOwn = "documents.read_own"

	UsersRead   = "users.read"
	UsersCreate = "users.create"
	UsersUpdate = "users.update"

	ProfilesRead   = "profiles.read"
	ProfilesCreate = "profiles.create"
	ProfilesUpdate = "profiles.update"
	ProfilesDelete = "profiles.delete"
)

type Definition struct {
	Module      string
	Action      string
	Description string
}

func (d Definition) Name() string {
	if d.Module == Wildcard {
		return Wildcard
	}
	return d.Module + "." + d.Action
}

// Catalog is every permission the platform knows about.
var Catalog = []Definition{
	{Wildcard, "", "Full access"},
	{"credit_applications", "create", "Submit credit applications"},
	{"credit_applications", "read", "View applications in the institution scope"},
	{"credit_applications", "read_own", "View own applications"},
	{"credit_applications", "review", "Move applications under review"},
	{"credit_applications", "approve", "Approve applications"},
	{"credit_applications", "reject", "Reject applications"},
	{"credit_applications", "*", "All credit application actions"},
	{"credit_programs", "read", "View credit programs"},
	{"credit_programs", "create", "Create credit programs"},
	{"credit_programs", "update", "Edit and toggle credit programs"},
	{"credit_programs", "*", "All credit program actions"},
	{"accounts", "read", "View accounts in the institution scope"},
	{"accounts", "read_own", "View own accounts"},
	{"accounts", "pay", "Record payments on own accounts"},
	{"documents", "upload", "Upload documents"},
	{"documents", "read", "View documents of any user"},
	{"documents", "read_own", "View own documents"},
	{"users", "read", "List users"},
	{"users", "create", "Create users"},
	{"users", "update", "Assign profiles and deactivate users"},
	{"profiles", "read", "List profiles"},
	{"profiles", "create", "Create profiles"},
	{"profiles", "update", "Edit profiles"},
	{"profiles", "delete", "Deactivate profiles"},
}

// DefaultProfiles maps each system profile to its permission names.
var DefaultProfiles = map[string][]string{
	"administrator": {Wildcard},
	"financial_institution": {
		ApplicationsRead, ApplicationsReview, ApplicationsApprove, ApplicationsReject,
		"credit_programs.*",
		AccountsRead,
		DocumentsRead,
		UsersRead, UsersCreate, UsersUpdate,
		ProfilesRead, ProfilesCreate, ProfilesUpdate,
	},
	"applicant": {
		ApplicationsCreate, ApplicationsReadOwn,
		AccountsReadOwn, AccountsPay,
		DocumentsUpload, DocumentsReadOwn,
		ProgramsRead,
	},
}

// DefaultProfileFor names the system profile a new user of type t receives.
func DefaultProfileFor(t user.Type) string {
	switch t {
	case user.TypeAdmin:
		return "administrator"
	case user.TypeFinancialInstitution:
		return "financial_institution"
	default:
		return "applicant"
	}
}
