package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationStatus is the single source of truth for an account's
// verification state. Legacy records written before the status field
// existed carry only the isVerified boolean; see User.Pending.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// Departments accepted for alumni accounts
var Departments = []string{
	"Information Technology",
	"Information System",
	"Computer Science",
	"Software Engineering",
}

// ValidDepartment reports whether dep is one of the fixed departments.
func ValidDepartment(dep string) bool {
	for _, d := range Departments {
		if d == dep {
			return true
		}
	}
	return false
}

// User is an alumni or admin account. Password holds the bcrypt hash and
// is never serialized to JSON.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName       string             `bson:"first_name" json:"first_name"`
	MiddleName      string             `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName        string             `bson:"last_name" json:"last_name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Department      string             `bson:"department,omitempty" json:"department,omitempty"`
	Batch           string             `bson:"batch,omitempty" json:"batch,omitempty"`
	ProfileImage    string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	LinkedinProfile string             `bson:"linkedin_profile,omitempty" json:"linkedin_profile,omitempty"`
	IsAdmin         bool               `bson:"isAdmin" json:"isAdmin"`
	IsVerified      bool               `bson:"isVerified" json:"isVerified"`
	Status          VerificationStatus `bson:"status,omitempty" json:"status,omitempty"`
	TempDocument    string             `bson:"tempDocument,omitempty" json:"tempDocument,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Pending reports whether the account is awaiting review. Records created
// before the status field existed have no status at all, so an unverified
// account with an empty status counts as pending too.
func (u *User) Pending() bool {
	return !u.IsVerified && (u.Status == "" || u.Status == StatusPending)
}

// UserResponse is the password-free projection returned to clients.
type UserResponse struct {
	ID              string             `json:"id"`
	FirstName       string             `json:"first_name"`
	MiddleName      string             `json:"middle_name,omitempty"`
	LastName        string             `json:"last_name"`
	Email           string             `json:"email"`
	Department      string             `json:"department,omitempty"`
	Batch           string             `json:"batch,omitempty"`
	ProfileImage    string             `json:"profile_image,omitempty"`
	LinkedinProfile string             `json:"linkedin_profile,omitempty"`
	IsAdmin         bool               `json:"isAdmin"`
	IsVerified      bool               `json:"isVerified"`
	Status          VerificationStatus `json:"status,omitempty"`
	TempDocument    string             `json:"tempDocument,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ToResponse converts User to UserResponse (excludes the password hash)
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:              u.ID.Hex(),
		FirstName:       u.FirstName,
		MiddleName:      u.MiddleName,
		LastName:        u.LastName,
		Email:           u.Email,
		Department:      u.Department,
		Batch:           u.Batch,
		ProfileImage:    u.ProfileImage,
		LinkedinProfile: u.LinkedinProfile,
		IsAdmin:         u.IsAdmin,
		IsVerified:      u.IsVerified,
		Status:          u.Status,
		TempDocument:    u.TempDocument,
		CreatedAt:       u.CreatedAt,
	}
}

// AlumnusResponse is the public projection used by the verified-alumni
// listing. No verification or document fields leak here.
type AlumnusResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	Department   string `json:"department,omitempty"`
	Batch        string `json:"batch,omitempty"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// ToAlumnus converts User to its public alumni projection
func (u *User) ToAlumnus() AlumnusResponse {
	return AlumnusResponse{
		ID:           u.ID.Hex(),
		FirstName:    u.FirstName,
		MiddleName:   u.MiddleName,
		LastName:     u.LastName,
		Department:   u.Department,
		Batch:        u.Batch,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// RegisterRequest carries the multipart registration form. The supporting
// document file rides alongside as tempDocument.
type RegisterRequest struct {
	FirstName       string `form:"first_name"`
	MiddleName      string `form:"middle_name"`
	LastName        string `form:"last_name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	Department      string `form:"department"`
	Batch           string `form:"batch"`
	LinkedinProfile string `form:"linkedin_profile"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest carries the admin verification decision
type VerifyRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// UpdateProfileRequest carries the multipart profile update form.
// Verification fields are deliberately absent.
type UpdateProfileRequest struct {
	FirstName       string `form:"first_name"`
	MiddleName      string `form:"middle_name"`
	LastName        string `form:"last_name"`
	Department      string `form:"department"`
	Batch           string `form:"batch"`
	LinkedinProfile string `form:"linkedin_profile"`
}
