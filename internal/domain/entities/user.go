package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the identity collaborator's account as seen by this service. It is
// referenced by recipes and relations but never modified through the API.
type User struct {
	Id        uuid.UUID
	CreatedAt time.Time
	Email     string
	Username  string
	FirstName string
	LastName  string
}

func NewUser(email, username, firstName, lastName string) *User {
	return &User{
		Id:        uuid.New(),
		CreatedAt: time.Now(),
		Email:     strings.TrimSpace(email),
		Username:  strings.TrimSpace(username),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username must not be empty")
	}
	if u.Email == "" {
		return errors.New("email must not be empty")
	}
	return nil
}

// UserProfile is a user as presented to a particular viewer.
type UserProfile struct {
	User
	IsSubscribed bool
}
