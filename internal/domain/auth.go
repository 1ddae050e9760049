package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	maxUsernameLength = 150

	usernameTakenMessage = "A user with that username already exists."
	invalidLoginMessage  = "Please enter a correct username and password. " +
		"Note that both fields may be case-sensitive."
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

type AuthDomain interface {
	SignupForm(context.Context, *model.SignupFormRequest) (*model.SignupResponse, error)
	Signup(context.Context, *model.SignupRequest) (*model.SignupResponse, error)
	LoginForm(context.Context, *model.LoginFormRequest) (*model.LoginResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Logout(context.Context, *model.LogoutRequest) (*model.LogoutResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) SignupForm(
	ctx context.Context, req *model.SignupFormRequest,
) (*model.SignupResponse, error) {
	return &model.SignupResponse{}, nil
}

func (d *authDomain) Signup(
	ctx context.Context, req *model.SignupRequest,
) (*model.SignupResponse, error) {
	form := model.SignupForm{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
	}

	switch {
	case req.Username == "":
		form.Errors = form.Errors.Add("username", requiredFieldMessage)
	case utf8.RuneCountInString(req.Username) > maxUsernameLength || !usernameRegex.MatchString(req.Username):
		form.Errors = form.Errors.Add("username", "Enter a valid username. This value may contain "+
			"only letters, numbers, and @/./+/-/_ characters.")
	default:
		_, err := d.userRepo.GetByUsername(ctx, req.Username)
		if err == nil {
			form.Errors = form.Errors.Add("username", usernameTakenMessage)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		form.Errors = form.Errors.Add("email", "Enter a valid email address.")
	}

	switch {
	case req.Password1 == "":
		form.Errors = form.Errors.Add("password1", requiredFieldMessage)
	case req.Password1 != req.Password2:
		form.Errors = form.Errors.Add("password2", "The two password fields didn't match.")
	default:
		for _, msg := range validatePassword(req.Password1, req.Username) {
			form.Errors = form.Errors.Add("password2", msg)
		}
	}

	if !form.Errors.Empty() {
		return &model.SignupResponse{Form: form}, nil
	}

	hashed, err := authenticator.HashPassword(req.Password1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:      entity.Base{ID: uuid.NewString()},
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
	}
	if err := d.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			form.Errors = form.Errors.Add("username", usernameTakenMessage)
			return &model.SignupResponse{Form: form}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SignupResponse{RedirectURL: "/"}, nil
}

// LoginForm keeps the next parameter in the session until the form is
// submitted.
func (d *authDomain) LoginForm(
	ctx context.Context, req *model.LoginFormRequest,
) (*model.LoginResponse, error) {
	return &model.LoginResponse{Next: safeNext(req.Next)}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	invalid := &model.LoginResponse{
		Form: model.LoginForm{
			Username: req.Username,
			Errors:   model.FormErrors{}.Add(model.NonFieldErrors, invalidLoginMessage),
		},
		Next: safeNext(req.Next),
	}

	if req.Username == "" || req.Password == "" {
		return invalid, nil
	}

	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if !authenticator.CheckPassword(user.Password, req.Password) {
		return invalid, nil
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: user.ID, Username: user.Username},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	redirectURL := safeNext(req.Next)
	if redirectURL == "" {
		redirectURL = "/"
	}

	return &model.LoginResponse{AccessToken: token, RedirectURL: redirectURL}, nil
}

func (d *authDomain) Logout(
	ctx context.Context, req *model.LogoutRequest,
) (*model.LogoutResponse, error) {
	return &model.LogoutResponse{}, nil
}

// safeNext only accepts local paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}

	return next
}

func validatePassword(password, username string) []string {
	var msgs []string
	if utf8.RuneCountInString(password) < minPasswordLength {
		msgs = append(msgs, "This password is too short. It must contain at least 8 characters.")
	}

	if strings.Trim(password, "0123456789") == "" {
		msgs = append(msgs, "This password is entirely numeric.")
	}

	if username != "" && strings.EqualFold(password, username) {
		msgs = append(msgs, "The password is too similar to the username.")
	}

	return msgs
}
