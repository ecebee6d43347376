package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserPending(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		user User
		want bool
	}{
		{"new pending record", User{IsVerified: false, Status: StatusPending}, true},
		{"legacy record without status", User{IsVerified: false}, true},
		{"approved", User{IsVerified: true, Status: StatusApproved}, false},
		{"legacy approved without status", User{IsVerified: true}, false},
		// A record someone hand-edited into an inconsistent state is
		// not treated as pending.
		{"rejected status", User{IsVerified: false, Status: StatusRejected}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.Pending(); got != tc.want {
				t.Fatalf("Pending() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidDepartment(t *testing.T) {
	t.Parallel()

	for _, d := range Departments {
		if !ValidDepartment(d) {
			t.Fatalf("ValidDepartment(%q) = false", d)
		}
	}
	if ValidDepartment("Astrology") {
		t.Fatalf("ValidDepartment accepted unknown department")
	}
	if ValidDepartment("") {
		t.Fatalf("ValidDepartment accepted empty department")
	}
}

func TestToAlumnusOmitsPrivateFields(t *testing.T) {
	t.Parallel()

	u := User{
		Email:        "a@b.com",
		Password:     "hash",
		Status:       StatusApproved,
		TempDocument: "degree-scan.pdf",
	}
	a := u.ToAlumnus()
	if a.Email != "a@b.com" {
		t.Fatalf("Email not carried over")
	}

	// The public directory projection must not leak the password hash,
	// verification state, or the supporting document.
	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	for _, leaked := range []string{"hash", "degree-scan.pdf", "status", "password"} {
		if strings.Contains(string(out), leaked) {
			t.Fatalf("public projection leaked %q in %s", leaked, out)
		}
	}
}
