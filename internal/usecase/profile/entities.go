package profile

type CreateInput struct {
	Name        string
	Description string
	Permissions []string
}

// UpdateInput applies only the non-nil fields; Permissions replaces the set.
type UpdateInput struct {
	Name        *string
	Description *string
	IsActive    *bool
	Permissions *[]string
}
