package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive = "active"
)

var ErrUserNotFound = errors.New("user not found")

// User is the profile document kept alongside the Firebase identity. The
// document ID equals the Firebase UID. tourCount and reviewCount are
// denormalized counters maintained by the tour and review write paths and
// repaired by the admin reconciliation pass.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	Role        string    `json:"role" firestore:"role"`
	TourCount   int64     `json:"tourCount" firestore:"tourCount"`
	ReviewCount int64     `json:"reviewCount" firestore:"reviewCount"`
	Status      string    `json:"status" firestore:"status"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// RoleForEmail applies the provisioning-time admin seed: the configured
// seed email registers as admin, everyone else as a plain user.
func RoleForEmail(email, seedAdminEmail string) string {
	if seedAdminEmail != "" && email == seedAdminEmail {
		return RoleAdmin
	}
	return RoleUser
}
