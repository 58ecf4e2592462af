package models

import "time"

// Principal is an authentication identity capable of logging in. Principals
// are only ever created through admin-user provisioning; the username is
// immutable once set and the password hash is mutated only through explicit
// password-change paths.
type Principal struct {
	ID           int        `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	IsStaff      bool       `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool       `db:"is_superuser" json:"is_superuser"`
	DateJoined   time.Time  `db:"date_joined" json:"date_joined"`
	LastLogin    *time.Time `db:"last_login" json:"last_login,omitempty"`
}

// FullName concatenates first and last name, falling back to the username
// when both are empty.
func (p *Principal) FullName() string {
	name := p.FirstName
	if p.LastName != "" {
		if name != "" {
			name += " "
		}
		name += p.LastName
	}
	if name == "" {
		return p.Username
	}
	return name
}
