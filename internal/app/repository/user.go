package repository

import (
	"WorldCities/internal/app/ds"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user with this login already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// RegisterUser stores a new user with a bcrypt hashed password
func (r *UserRepository) RegisterUser(ctx context.Context, login, password string, isAdmin bool) (*ds.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, errors.New("login and password are required")
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ds.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &ds.User{
		Login:    login,
		Password: string(hash),
		IsAdmin:  isAdmin,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks the credentials; ErrInvalidCredentials on any mismatch
func (r *UserRepository) Authenticate(ctx context.Context, login, password string) (*ds.User, error) {
	var user ds.User
	err := r.db.WithContext(ctx).Where("login = ?", strings.TrimSpace(login)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
