package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleNormal     = "Normal"
	RoleSupervisor = "Supervisor"
	RoleSuperUser  = "SuperUser"
)

// User document stored in "users".
// Supervisor is a weak reference to another user and may form cycles.
type User struct {
	ID           bson.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string         `bson:"name" json:"name"`
	Email        string         `bson:"email" json:"email"`
	PasswordHash string         `bson:"password,omitempty" json:"-"`
	Role         string         `bson:"role" json:"role"`
	PhotoURL     string         `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Supervisor   *bson.ObjectID `bson:"supervisor,omitempty" json:"supervisor,omitempty"`
	Organization string         `bson:"organization" json:"organization"`
	Gender       string         `bson:"gender" json:"gender"`
	CreatedAt    time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt" json:"updatedAt"`
	LastLogin    time.Time      `bson:"lastLogin" json:"lastLogin"`
}

func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) IsSuperUser() bool {
	return u.HasRole(RoleSuperUser)
}

// ReportsTo is true when the user's supervisor link points at id.
func (u *User) ReportsTo(id bson.ObjectID) bool {
	return u != nil && u.Supervisor != nil && *u.Supervisor == id
}
