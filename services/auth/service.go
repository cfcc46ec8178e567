package auth

import (
	"context"
	"errors"

	"dormly/apperror"
	userModel "dormly/models/user"
	authTypes "dormly/types/auth"
	"dormly/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

var (
	ErrUsernameTaken      = apperror.Conflict("Username already exists")
	ErrEmailTaken         = apperror.Conflict("Email already exists")
	ErrInvalidCredentials = apperror.Unauthenticated("Invalid username or password")
)

// Service registers users and logs them in.
type Service struct {
	DB     *gorm.DB
	Tokens *TokenIssuer
	// Cipher encrypts national ids before they are stored. Nil stores them
	// as given.
	Cipher *utils.Cipher
}

// NewService creates a new auth service
func NewService(db *gorm.DB, tokens *TokenIssuer, cipher *utils.Cipher) *Service {
	return &Service{DB: db, Tokens: tokens, Cipher: cipher}
}

func (s *Service) exists(ctx context.Context, column, value string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&userModel.User{}).Where(column+" = ?", value).Count(&count).Error
	return count > 0, err
}

// Register creates a user with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, req authTypes.RegisterRequest) (*userModel.User, error) {
	req = req.Normalize()
	if violations := req.Validate(); len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	taken, err := s.exists(ctx, "username", req.Username)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	taken, err = s.exists(ctx, "email", req.Email)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	nationalID := req.NationalID
	if s.Cipher != nil && nationalID != nil && *nationalID != "" {
		enc, err := s.Cipher.Encrypt(*nationalID)
		if err != nil {
			return nil, apperror.Storage(err)
		}
		nationalID = &enc
	}

	u := &userModel.User{
		Username:   req.Username,
		Password:   string(hash),
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Sex:        req.Sex,
		NationalID: nationalID,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, apperror.Storage(err)
	}
	return u, nil
}

// Login checks the credentials and returns a signed token for the user.
func (s *Service) Login(ctx context.Context, req authTypes.LoginRequest) (string, *userModel.User, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return "", nil, apperror.Validation(violations...)
	}

	var u userModel.User
	err := s.DB.WithContext(ctx).Where("username = ?", req.Username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, apperror.Storage(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID, u.Username)
	if err != nil {
		return "", nil, apperror.Storage(err)
	}
	return token, &u, nil
}

var ErrUserNotFound = apperror.NotFound("User not found")

// Profile returns the account of an authenticated user.
func (s *Service) Profile(ctx context.Context, userID uint) (*userModel.User, error) {
	var u userModel.User
	err := s.DB.WithContext(ctx).First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &u, nil
}
