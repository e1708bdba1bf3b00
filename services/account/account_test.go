package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hoardify/models"
	"hoardify/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	tok, _ := args.Get(0).(*auth.Token)
	return tok, args.Error(1)
}

func (m *mockAuth) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid)
	rec, _ := args.Get(0).(*auth.UserRecord)
	return rec, args.Error(1)
}

func (m *mockAuth) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid, user)
	rec, _ := args.Get(0).(*auth.UserRecord)
	return rec, args.Error(1)
}

func (m *mockAuth) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

type stubRoles map[string]*models.User

func (s stubRoles) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, models.ErrNotFound
}

type stubPasswords struct{ err error }

func (s stubPasswords) VerifyPassword(context.Context, string, string) error { return s.err }

func TestVerifyAdmin(t *testing.T) {
	a := new(mockAuth)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "claim").Return(&auth.Token{UID: "a1", Claims: map[string]interface{}{"admin": true}}, nil)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "role").Return(&auth.Token{UID: "a2", Claims: map[string]interface{}{}}, nil)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "customer").Return(&auth.Token{UID: "u1", Claims: map[string]interface{}{}}, nil)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "stranger").Return(&auth.Token{UID: "x9", Claims: map[string]interface{}{}}, nil)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "bad").Return(nil, errors.New("expired"))

	svc := &DefaultAccountService{Auth: a, Roles: stubRoles{
		"a2": {Role: models.RoleAdmin},
		"u1": {Role: models.RoleUser},
	}}

	uid, err := svc.VerifyAdmin(context.Background(), "claim")
	require.NoError(t, err)
	assert.Equal(t, "a1", uid)

	uid, err = svc.VerifyAdmin(context.Background(), "role")
	require.NoError(t, err)
	assert.Equal(t, "a2", uid)

	_, err = svc.VerifyAdmin(context.Background(), "customer")
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.VerifyAdmin(context.Background(), "stranger")
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = svc.VerifyAdmin(context.Background(), "bad")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = svc.VerifyAdmin(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestVerifyAdmin_RevokedToken(t *testing.T) {
	a := new(mockAuth)
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "revoked").
		Return(nil, errors.New("ID token has been revoked"))
	a.On("VerifyIDTokenAndCheckRevoked", mock.Anything, "disabled").
		Return(nil, errors.New("user has been disabled"))

	svc := &DefaultAccountService{Auth: a, Roles: stubRoles{"a1": {Role: models.RoleAdmin}}}

	_, err := svc.VerifyAdmin(context.Background(), "revoked")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	_, err = svc.VerifyAdmin(context.Background(), "disabled")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	a.AssertExpectations(t)
}

func TestRevokeSessions_EvictsCachedTokens(t *testing.T) {
	a := new(mockAuth)
	a.On("RevokeRefreshTokens", mock.Anything, "a1").Return(nil).Once()

	db, cache := redismock.NewClientMock()
	sessionKey := utils.AuthSessionPrefix + "a1"
	cached := utils.AuthCachePrefix + utils.HashToken("tok")
	cache.ExpectSMembers(sessionKey).SetVal([]string{cached})
	cache.ExpectDel(cached, sessionKey).SetVal(2)

	svc := &DefaultAccountService{Auth: a, Cache: db}
	require.NoError(t, svc.RevokeSessions(context.Background(), "a1"))
	a.AssertExpectations(t)
	assert.NoError(t, cache.ExpectationsWereMet())
}

func TestRevokeSessions_RevokeFailure(t *testing.T) {
	a := new(mockAuth)
	a.On("RevokeRefreshTokens", mock.Anything, "a1").Return(errors.New("auth down"))

	db, cache := redismock.NewClientMock()
	svc := &DefaultAccountService{Auth: a, Cache: db}

	assert.Error(t, svc.RevokeSessions(context.Background(), "a1"))
	assert.NoError(t, cache.ExpectationsWereMet(), "cache untouched when revocation fails")
}

func adminRecord() *auth.UserRecord {
	return &auth.UserRecord{
		UserInfo:      &auth.UserInfo{UID: "a1", Email: "admin@hoardify.in", DisplayName: "Admin"},
		EmailVerified: true,
		UserMetadata:  &auth.UserMetadata{LastLogInTimestamp: 1717000000000},
	}
}

func TestProfile(t *testing.T) {
	a := new(mockAuth)
	a.On("GetUser", mock.Anything, "a1").Return(adminRecord(), nil)

	p, err := (&DefaultAccountService{Auth: a}).Profile(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, "admin@hoardify.in", p.Email)
	assert.Equal(t, int64(1717000000000), p.LastSignIn)
}

func TestChangePassword(t *testing.T) {
	a := new(mockAuth)
	a.On("GetUser", mock.Anything, "a1").Return(adminRecord(), nil)
	a.On("UpdateUser", mock.Anything, "a1", mock.Anything).Return(adminRecord(), nil).Once()
	a.On("RevokeRefreshTokens", mock.Anything, "a1").Return(nil).Once()

	svc := &DefaultAccountService{Auth: a, Passwords: stubPasswords{}}
	err := svc.ChangePassword(context.Background(), "a1", models.PasswordChangeRequest{
		CurrentPassword: "Old#Pass1",
		NewPassword:     "N3w#Passw0rd",
	})
	require.NoError(t, err)
	a.AssertExpectations(t)
}

func TestChangePassword_Rejections(t *testing.T) {
	a := new(mockAuth)
	a.On("GetUser", mock.Anything, "a1").Return(adminRecord(), nil)

	svc := &DefaultAccountService{Auth: a, Passwords: stubPasswords{err: models.ErrUnauthorized}}

	err := svc.ChangePassword(context.Background(), "a1", models.PasswordChangeRequest{CurrentPassword: "x", NewPassword: "short"})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.ChangePassword(context.Background(), "a1", models.PasswordChangeRequest{CurrentPassword: "x", NewPassword: "alllowercase1!"})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.ChangePassword(context.Background(), "a1", models.PasswordChangeRequest{CurrentPassword: "Wrong#1pass", NewPassword: "N3w#Passw0rd"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
	a.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPasswordComplexity(t *testing.T) {
	assert.NoError(t, VerifyPasswordComplexity("Abcdef1!"))
	assert.Error(t, VerifyPasswordComplexity("Abc1!"))
	assert.Error(t, VerifyPasswordComplexity("abcdefg1!"))
	assert.Error(t, VerifyPasswordComplexity("ABCDEFG1!"))
	assert.Error(t, VerifyPasswordComplexity("Abcdefgh!"))
	assert.Error(t, VerifyPasswordComplexity("Abcdefgh1"))
}

func TestIdentityToolkit_VerifyPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch req.Password {
		case "right":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"idToken":"t"}`))
		case "busy":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"}}`))
		case "boom":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"code":500,"message":"INTERNAL"}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`))
		}
	}))
	defer srv.Close()

	tk := NewIdentityToolkit("test-key")
	tk.Endpoint = srv.URL

	assert.NoError(t, tk.VerifyPassword(context.Background(), "admin@hoardify.in", "right"))
	assert.ErrorIs(t, tk.VerifyPassword(context.Background(), "admin@hoardify.in", "wrong"), models.ErrUnauthorized)
	assert.ErrorIs(t, tk.VerifyPassword(context.Background(), "admin@hoardify.in", "busy"), models.ErrUnauthorized)

	err := tk.VerifyPassword(context.Background(), "admin@hoardify.in", "boom")
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrUnauthorized)

	assert.Error(t, NewIdentityToolkit("").VerifyPassword(context.Background(), "a", "b"))
}
