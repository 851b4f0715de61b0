package models

// Organization — организация (клиника), к которой привязаны пациенты и пользователи.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrganizationCreate struct {
	Name string `json:"name"`
}

type OrganizationUpdate struct {
	Name *string `json:"name,omitempty"`
}

// Role — роль доступа (admin/user и т.п.; перечень владеет upstream).
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleCreate struct {
	Name string `json:"name"`
}

type RoleUpdate struct {
	Name *string `json:"name,omitempty"`
}

// User — пользователь консоли.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	IsSuperuser    bool   `json:"is_superuser,omitempty"`
	Roles          []Role `json:"roles,omitempty"`
}

type UserCreate struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

type UserUpdate struct {
	Email          *string `json:"email,omitempty"`
	Password       *string `json:"password,omitempty"`
	FullName       *string `json:"full_name,omitempty"`
	OrganizationID *string `json:"organization_id,omitempty"`
}

// RoleAssignment — назначение роли пользователю.
type RoleAssignment struct {
	RoleID string `json:"role_id"`
}
