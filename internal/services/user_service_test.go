package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finboard/internal/auth"
	"finboard/internal/core"
	"finboard/internal/storage"
)

func newUserService(t *testing.T) (*UserService, *storage.Store) {
	t.Helper()
	store := newTestStore(t)
	mgr := auth.NewManager("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewUserService(store, mgr, NewCategoryService(store))
	svc.now = func() time.Time { return testNow }
	return svc, store
}

func TestRegister(t *testing.T) {
	svc, store := newUserService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "  Anna@Example.COM ", "Anna", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "anna@example.com", result.User.Email)
	require.Equal(t, "Anna", result.User.Name)

	// A fresh account starts with the default categories.
	categories, err := store.ListCategories(ctx, result.User.ID)
	require.NoError(t, err)
	require.Len(t, categories, len(defaultCategories))
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"empty email", "", "Anna", "correct horse"},
		{"email without at sign", "anna.example.com", "Anna", "correct horse"},
		{"short password", "anna@example.com", "Anna", "short"},
		{"empty name", "anna@example.com", "  ", "correct horse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.username, tc.password)
			require.ErrorIs(t, err, core.ErrBadRequest)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "anna@example.com", "Anna", "correct horse")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ANNA@example.com", "Other Anna", "correct horse")
	require.ErrorIs(t, err, core.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "anna@example.com", "Anna", "correct horse")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "anna@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, result.User.ID)
	require.NotEmpty(t, result.Token)
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "anna@example.com", "Anna", "correct horse")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "anna@example.com", "wrong password")
	_, unknown := svc.Login(ctx, "nobody@example.com", "correct horse")
	require.ErrorIs(t, wrongPass, core.ErrBadRequest)
	require.ErrorIs(t, unknown, core.ErrBadRequest)
	require.Equal(t, core.ErrMessage(wrongPass), core.ErrMessage(unknown))
}

func TestGetUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "anna@example.com", "Anna", "correct horse")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.User.ID)
	require.NoError(t, err)
	require.Equal(t, "anna@example.com", user.Email)

	_, err = svc.GetUser(ctx, "missing")
	require.ErrorIs(t, err, core.ErrNotFound)
}
