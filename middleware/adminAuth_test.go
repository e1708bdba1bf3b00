package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hoardify/models"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	calls int
	uid   string
	err   error
}

func (f *fakeVerifier) VerifyAdmin(ctx context.Context, token string) (string, error) {
	f.calls++
	return f.uid, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/secure", mw, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("adminID"))
	})
	return r
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	v := &fakeVerifier{uid: "admin-1"}
	r := authRouter(AdminAuthMiddleware(v, nil, time.Minute, zap.NewNop()))

	for _, h := range []string{"", "Token abc", "Bearer "} {
		assert.Equal(t, http.StatusUnauthorized, doAuth(r, h).Code, h)
	}
	assert.Zero(t, v.calls)
}

func TestAdminAuth_VerifierErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{errors.New("firebase unreachable"), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		r := authRouter(AdminAuthMiddleware(&fakeVerifier{err: tt.err}, nil, time.Minute, zap.NewNop()))
		assert.Equal(t, tt.status, doAuth(r, "Bearer tok").Code)
	}
}

func TestAdminAuth_CacheMissThenStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := utils.AuthCachePrefix + utils.HashToken("tok")
	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, "admin-1", 5*time.Minute).SetVal("OK")
	mock.ExpectSAdd(utils.AuthSessionPrefix+"admin-1", key).SetVal(1)
	mock.ExpectExpire(utils.AuthSessionPrefix+"admin-1", 5*time.Minute).SetVal(true)

	v := &fakeVerifier{uid: "admin-1"}
	w := doAuth(authRouter(AdminAuthMiddleware(v, db, 5*time.Minute, zap.NewNop())), "Bearer tok")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())
	assert.Equal(t, 1, v.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminAuth_CacheHitSkipsVerification(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := utils.AuthCachePrefix + utils.HashToken("tok")
	mock.ExpectGet(key).SetVal("admin-1")

	v := &fakeVerifier{err: models.ErrUnauthorized}
	w := doAuth(authRouter(AdminAuthMiddleware(v, db, time.Minute, zap.NewNop())), "Bearer tok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin-1", w.Body.String())
	assert.Zero(t, v.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminAuth_CacheDownFallsBack(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := utils.AuthCachePrefix + utils.HashToken("tok")
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.ExpectSet(key, "admin-1", time.Minute).SetErr(errors.New("connection refused"))

	v := &fakeVerifier{uid: "admin-1"}
	w := doAuth(authRouter(AdminAuthMiddleware(v, db, time.Minute, zap.NewNop())), "Bearer tok")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, v.calls)
}

func TestAdminAuth_EvictedTokenIsVerifiedAgain(t *testing.T) {
	db, mock := redismock.NewClientMock()
	key := utils.AuthCachePrefix + utils.HashToken("tok")
	sessionKey := utils.AuthSessionPrefix + "admin-1"
	mock.ExpectSMembers(sessionKey).SetVal([]string{key})
	mock.ExpectDel(key, sessionKey).SetVal(2)
	mock.ExpectGet(key).RedisNil()

	require.NoError(t, utils.EvictAdminTokens(context.Background(), db, "admin-1"))

	v := &fakeVerifier{err: models.ErrUnauthorized}
	w := doAuth(authRouter(AdminAuthMiddleware(v, db, time.Minute, zap.NewNop())), "Bearer tok")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, v.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
