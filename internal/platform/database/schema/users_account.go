// Copyright (c) 2026 Planora. All rights reserved.

// Package schema centralizes table and column identifiers for every
// relation the repositories touch, keeping SQL strings free of typos.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	LoginID   string
	Password  string
	Nickname  string
	Status    string
	CreatedAt string
	UpdatedAt string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	LoginID:   "loginid",
	Password:  "passwordhash",
	Nickname:  "nickname",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
