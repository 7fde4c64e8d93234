package authz

// Terminal roles. A cashier terminal can record sales and payments but may
// not delete records or change supplier/expense books.
const (
	RoleCashier = 10
	RoleAdmin   = 50
)

func IsAdmin(roleID int) bool {
	return roleID == RoleAdmin
}
