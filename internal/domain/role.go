package domain

// Role роль пользователя панели управления
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// ParseRole возвращает роль и false, если роль неизвестна
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleOwner, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// CanManageBookings владелец и администратор могут подтверждать и отменять брони
func (r Role) CanManageBookings() bool {
	return r == RoleOwner || r == RoleAdmin
}

// IsAdmin returns true for the admin role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
