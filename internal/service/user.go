package service

import (
	"net/http"

	"github.com/peerpods-dev/peerpods/internal/utils"
	"github.com/peerpods-dev/peerpods/shared/domain"
	"github.com/peerpods-dev/peerpods/shared/errors"
	"github.com/peerpods-dev/peerpods/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(username domain.Username, password string, bio domain.Bio) (domain.UserId, error)
	Login(username domain.Username, password string) (string, error)
	Get(id domain.UserId) (*domain.User, error)
	UpdateBio(id domain.UserId, bio domain.Bio) error
}

type User struct {
	storage   UserStorage
	jwt       Jwt
	validator UserValidator
}

type UserStorage interface {
	CreateUser(data domain.UserCreationData) (domain.UserId, error)
	GetUser(id domain.UserId) (*domain.User, error)
	GetUserByUsername(username domain.Username) (*domain.User, error)
	UpdateUserBio(id domain.UserId, bio domain.Bio) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type UserValidator interface {
	Username(name string) error
	Password(password string) error
	Bio(bio string) error
}

func NewUser(storage UserStorage, jwt Jwt, validator UserValidator) UserService {
	return &User{storage, jwt, validator}
}

func (u *User) Register(username domain.Username, password string, bio domain.Bio) (domain.UserId, error) {
	if err := u.validator.Username(string(username)); err != nil {
		return 0, err
	}
	if err := u.validator.Password(password); err != nil {
		return 0, err
	}
	bio = domain.Bio(utils.Sanitize(string(bio)))
	if err := u.validator.Bio(string(bio)); err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	id, err := u.storage.CreateUser(domain.UserCreationData{Username: username, Bio: bio, PassHash: string(passHash)})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (u *User) Login(username domain.Username, password string) (string, error) {
	user, err := u.storage.GetUserByUsername(username)
	if err != nil {
		// do not reveal whether the username exists
		return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
	}

	token, err := u.jwt.NewToken(*user)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (u *User) Get(id domain.UserId) (*domain.User, error) {
	return u.storage.GetUser(id)
}

func (u *User) UpdateBio(id domain.UserId, bio domain.Bio) error {
	bio = domain.Bio(utils.Sanitize(string(bio)))
	if err := u.validator.Bio(string(bio)); err != nil {
		return err
	}
	return u.storage.UpdateUserBio(id, bio)
}
