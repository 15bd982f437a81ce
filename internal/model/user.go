package model

import "time"

// Admin role name carried in JWT claims and enforced by the role
// middleware on every protected route.
const RoleAdmin = "ADMIN"

// User represents a back-office administrator account as stored in
// the `users` table.  Sessions yield {uid, email, displayName} to the
// dashboard; the password hash never leaves the repository layer.
//
// Fields:
//  ID           – primary key, UUID string.
//  Email        – unique, normalized to lower case.
//  DisplayName  – name shown in the dashboard header.
//  PasswordHash – bcrypt hash of the password.
//  Role         – role name, currently always ADMIN.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
