package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyFullname    = errors.New("fullname cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyMobile      = errors.New("mobile number cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
	ErrInvalidAge       = errors.New("age must be positive")
)

// User represents a registered user. Email and mobile are unique across all
// users. A user record is created once at registration and never mutated by
// this system afterwards, except for the weeklist creation counter.
type User struct {
	ID             uuid.UUID `json:"id"`
	Fullname       string    `json:"fullname"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only populated during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	Mobile         string    `json:"mobile"`

	// WeeklistsCreated counts every weeklist this user has ever created,
	// including deleted ones. It drives the "Weeklist #N" naming.
	WeeklistsCreated int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a User from registration input. It generates a new UUID and
// sets the creation timestamp. The plaintext password is carried only until
// the store hashes it. Returns an error if validation fails.
func NewUser(fullname, email, password string, age int, gender, mobile string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Fullname:  strings.TrimSpace(fullname),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		Age:       age,
		Gender:    gender,
		Mobile:    strings.TrimSpace(mobile),
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}
	if u.Fullname == "" {
		return ErrEmptyFullname
	}
	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}
	if u.Mobile == "" {
		return ErrEmptyMobile
	}
	if u.Age <= 0 {
		return ErrInvalidAge
	}

	if u.Password != "" {
		if len(u.Password) < 6 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store must carry a hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a basic structural check: a local part, an @, and
// a dotted domain. Full RFC 5322 validation is left to the API layer's
// validator tags.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
