package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/testutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func Test_authDomain_Signup(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	fixture.CreateUserWithName(ctx, "taken")

	domain := NewAuthDomain(repository.NewUserRepository())

	testCases := []struct {
		name      string
		req       *model.SignupRequest
		wantField string
	}{
		{
			name:      "missing username",
			req:       &model.SignupRequest{Password1: "Secret-pass1", Password2: "Secret-pass1"},
			wantField: "username",
		},
		{
			name:      "invalid username",
			req:       &model.SignupRequest{Username: "bad name", Password1: "Secret-pass1", Password2: "Secret-pass1"},
			wantField: "username",
		},
		{
			name:      "taken username",
			req:       &model.SignupRequest{Username: "taken", Password1: "Secret-pass1", Password2: "Secret-pass1"},
			wantField: "username",
		},
		{
			name:      "password mismatch",
			req:       &model.SignupRequest{Username: "leo", Password1: "Secret-pass1", Password2: "Secret-pass2"},
			wantField: "password2",
		},
		{
			name:      "short password",
			req:       &model.SignupRequest{Username: "leo", Password1: "short", Password2: "short"},
			wantField: "password2",
		},
		{
			name:      "numeric password",
			req:       &model.SignupRequest{Username: "leo", Password1: "123456789", Password2: "123456789"},
			wantField: "password2",
		},
		{
			name:      "invalid email",
			req:       &model.SignupRequest{Username: "leo", Email: "leo", Password1: "Secret-pass1", Password2: "Secret-pass1"},
			wantField: "email",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := domain.Signup(ctx, tt.req)
			require.NoError(t, err)
			require.NotEmpty(t, resp.Form.Errors.Get(tt.wantField))
			require.Empty(t, resp.RedirectURL)
		})
	}

	resp, err := domain.Signup(ctx, &model.SignupRequest{
		Username:  "leo",
		FirstName: "Leo",
		LastName:  "Tolstoy",
		Email:     "leo@example.com",
		Password1: "Secret-pass1",
		Password2: "Secret-pass1",
	})
	require.NoError(t, err)
	require.Equal(t, "/", resp.RedirectURL)

	user, err := repository.NewUserRepository().GetByUsername(ctx, "leo")
	require.NoError(t, err)
	require.Equal(t, "Leo Tolstoy", user.FullName())
	require.NotEqual(t, "Secret-pass1", user.Password)
}

// lateUserRepository misses the lookup of usernames, as if a concurrent
// signup inserted the user after the check.
type lateUserRepository struct {
	repository.UserRepository
}

func (lateUserRepository) GetByUsername(context.Context, string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func Test_authDomain_Signup_ConcurrentUsername(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.NewFixture().CreateUserWithName(ctx, "leo")

	domain := NewAuthDomain(lateUserRepository{repository.NewUserRepository()})
	resp, err := domain.Signup(ctx, &model.SignupRequest{
		Username:  "leo",
		Password1: "Secret-pass1",
		Password2: "Secret-pass1",
	})
	require.NoError(t, err)
	require.Empty(t, resp.RedirectURL)
	require.Equal(t, []string{"A user with that username already exists."}, resp.Form.Errors.Get("username"))
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	user := fixture.CreateUserWithName(ctx, "leo")

	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.Login(ctx, &model.LoginRequest{Username: "leo", Password: "wrong", Next: "/create/"})
	require.NoError(t, err)
	require.Empty(t, resp.AccessToken)
	require.NotEmpty(t, resp.Form.Errors.Get(model.NonFieldErrors))
	require.Equal(t, map[string]any{"next": "/create/"}, resp.SessionInfo())

	resp, err = domain.Login(ctx, &model.LoginRequest{Username: "leo", Password: testutil.FixturePassword, Next: "/create/"})
	require.NoError(t, err)
	require.Equal(t, "/create/", resp.RedirectURL)
	require.Nil(t, resp.SessionInfo())

	var token model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &token))
	require.Equal(t, user.ID, token.ID)
	require.Equal(t, "leo", token.Username)

	cookies := resp.CookieInfo(ctx)
	require.Len(t, cookies, 1)
	require.Equal(t, "access_token", cookies[0].Name)

	// Foreign redirects fall back to the index.
	resp, err = domain.Login(ctx, &model.LoginRequest{
		Username: "leo", Password: testutil.FixturePassword, Next: "//evil.example.com/"})
	require.NoError(t, err)
	require.Equal(t, "/", resp.RedirectURL)
}

func Test_authDomain_LoginForm(t *testing.T) {
	ctx := testutil.MockContext()
	domain := NewAuthDomain(repository.NewUserRepository())

	resp, err := domain.LoginForm(ctx, &model.LoginFormRequest{Next: "/follow/"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"next": "/follow/"}, resp.SessionInfo())

	resp, err = domain.LoginForm(ctx, &model.LoginFormRequest{Next: "https://evil.example.com/"})
	require.NoError(t, err)
	require.Nil(t, resp.SessionInfo())
}
