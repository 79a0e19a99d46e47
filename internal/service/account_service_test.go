package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/api/dto"
	"gymmate/internal/pkg/consts"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

func newAccountService(t *testing.T) (AccountService, repository.UserRepo, *fakeStore) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepo(db)
	store := newFakeStore()
	svc := NewAccountService(userRepo, newFakeBlacklist(), store, &fakeMailer{}, "http://localhost/auth")
	return svc, userRepo, store
}

func TestAccountServiceSignUp(t *testing.T) {
	svc, userRepo, _ := newAccountService(t)
	ctx := context.Background()

	userDTO, err := svc.SignUp(ctx, &dto.SignUpDTO{
		Email:     "alice@example.com",
		Password:  "secret1",
		FirstName: "Alice",
	})
	require.NoError(t, err)

	t.Run("username defaults to email", func(t *testing.T) {
		assert.Equal(t, "alice@example.com", userDTO.Username)
		assert.Equal(t, "alice@example.com", userDTO.Email)
	})

	t.Run("account starts inactive with a rotation token", func(t *testing.T) {
		user, err := userRepo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.False(t, user.IsActive)
		assert.NotEmpty(t, user.Token)
		assert.NotEqual(t, "secret1", user.PasswordHash)
	})

	t.Run("duplicate email is rejected per field", func(t *testing.T) {
		_, err := svc.SignUp(ctx, &dto.SignUpDTO{Email: "alice@example.com", Password: "secret1"})
		require.Error(t, err)

		fieldErrs, ok := validate.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fieldErrs["email"], "Email already in use by another account")
		assert.NotEmpty(t, fieldErrs["username"])
	})
}

func TestAccountServiceLoginAndActivation(t *testing.T) {
	svc, userRepo, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &dto.SignUpDTO{Email: "bob@example.com", Password: "secret1"})
	require.NoError(t, err)

	t.Run("inactive account cannot log in", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Username: "bob@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrAccountInactive)
	})

	user, err := userRepo.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	activationToken := user.Token

	t.Run("activation flips the flag and rotates the token", func(t *testing.T) {
		require.NoError(t, svc.Activate(ctx, activationToken))

		user, err := userRepo.GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, activationToken, user.Token)

		// 旧令牌立即失效
		assert.ErrorIs(t, svc.Activate(ctx, activationToken), ErrTokenInvalid)
	})

	t.Run("login succeeds after activation", func(t *testing.T) {
		token, err := svc.Login(ctx, &dto.CredentialDTO{Username: "bob@example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, 3, len(strings.Split(token, ".")))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Username: "bob@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)

		_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "ghost", Password: "nope"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})
}

func TestAccountServiceResetPassword(t *testing.T) {
	svc, userRepo, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, &dto.SignUpDTO{Email: "carol@example.com", Password: "oldpass"})
	require.NoError(t, err)
	user, err := userRepo.GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Activate(ctx, user.Token))

	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordDTO{Email: "carol@example.com"}))

	// 未注册邮箱静默成功
	require.NoError(t, svc.ForgotPassword(ctx, &dto.ForgotPasswordDTO{Email: "nobody@example.com"}))

	user, err = userRepo.GetUserByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	resetToken := user.Token

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordDTO{Token: resetToken, NewPassword: "newpass"}))

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "carol@example.com", Password: "oldpass"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "carol@example.com", Password: "newpass"})
	require.NoError(t, err)

	// 重置令牌一次有效
	err = svc.ResetPassword(ctx, &dto.ResetPasswordDTO{Token: resetToken, NewPassword: "again"})
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccountServiceOwnership(t *testing.T) {
	svc, userRepo, store := newAccountService(t)
	ctx := context.Background()

	ownerDTO, err := svc.SignUp(ctx, &dto.SignUpDTO{Email: "dave@example.com", Password: "secret1"})
	require.NoError(t, err)
	otherDTO, err := svc.SignUp(ctx, &dto.SignUpDTO{Email: "erin@example.com", Password: "secret1"})
	require.NoError(t, err)

	newName := "Dave"
	t.Run("non owner update is not allowed", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, otherDTO.ID, false, ownerDTO.ID, &dto.UpdateUserDTO{FirstName: &newName})
		assert.ErrorIs(t, err, ErrMethodNotAllowed)
	})

	t.Run("owner update succeeds", func(t *testing.T) {
		gender := consts.GenderMale
		updated, err := svc.UpdateUser(ctx, ownerDTO.ID, false, ownerDTO.ID, &dto.UpdateUserDTO{FirstName: &newName, Gender: &gender})
		require.NoError(t, err)
		assert.Equal(t, "Dave", updated.FirstName)
		assert.Equal(t, consts.GenderMale, updated.Gender)
	})

	t.Run("changing email to a taken one is rejected", func(t *testing.T) {
		taken := "erin@example.com"
		_, err := svc.UpdateUser(ctx, ownerDTO.ID, false, ownerDTO.ID, &dto.UpdateUserDTO{Email: &taken})
		fieldErrs, ok := validate.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fieldErrs["email"], "Email already in use by another account")
	})

	t.Run("staff can update anyone", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, otherDTO.ID, true, ownerDTO.ID, &dto.UpdateUserDTO{FirstName: &newName})
		require.NoError(t, err)
	})

	t.Run("avatar replace cleans up the old object", func(t *testing.T) {
		first, err := svc.UpdateAvatar(ctx, ownerDTO.ID, false, ownerDTO.ID, "a.png", strings.NewReader("img1"), 4, "image/png")
		require.NoError(t, err)
		require.NotEmpty(t, first.AvatarURL)

		_, err = svc.UpdateAvatar(ctx, ownerDTO.ID, false, ownerDTO.ID, "b.png", strings.NewReader("img2"), 4, "image/png")
		require.NoError(t, err)
		require.Len(t, store.removedObjects(), 1)
	})

	t.Run("non owner delete is not allowed", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteUser(ctx, otherDTO.ID, false, ownerDTO.ID), ErrMethodNotAllowed)
	})

	t.Run("owner delete removes row and avatar object", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, ownerDTO.ID, false, ownerDTO.ID))

		user, err := userRepo.GetUserById(ctx, ownerDTO.ID)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Len(t, store.removedObjects(), 2)
	})
}
