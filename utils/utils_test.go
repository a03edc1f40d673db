package utils

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/cppla/aiblog/config"
)

func TestTokenRoundTrip(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(7, "leo", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "leo", claims.Username)

	_, err = ParseToken(token + "x")
	require.Error(t, err)
}

func TestTokenCarriesBlogClaims(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret"})

	token, err := IssueToken(7, "leo")
	require.NoError(t, err)
	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, TokenIssuer, claims.Issuer)
	require.Equal(t, "7", claims.Subject)
	require.WithinDuration(t, time.Now().Add(TokenTTL), claims.Expiry(), time.Minute)
}

func TestForeignTokensRejected(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret"})

	sign := func(c jwt.Claims, method jwt.SigningMethod) string {
		s, err := jwt.NewWithClaims(method, c).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return s
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	otherIssuer := sign(Claims{UserID: 7, Username: "leo", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: "someone-else", Subject: "7", ExpiresAt: exp,
	}}, jwt.SigningMethodHS256)
	_, err := ParseToken(otherIssuer)
	require.Error(t, err)

	noExpiry := sign(Claims{UserID: 7, Username: "leo", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: TokenIssuer, Subject: "7",
	}}, jwt.SigningMethodHS256)
	_, err = ParseToken(noExpiry)
	require.Error(t, err)

	wrongSubject := sign(Claims{UserID: 7, Username: "leo", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: TokenIssuer, Subject: "8", ExpiresAt: exp,
	}}, jwt.SigningMethodHS256)
	_, err = ParseToken(wrongSubject)
	require.ErrorIs(t, err, errTokenSubject)

	otherAlg := sign(Claims{UserID: 7, Username: "leo", RegisteredClaims: jwt.RegisteredClaims{
		Issuer: TokenIssuer, Subject: "7", ExpiresAt: exp,
	}}, jwt.SigningMethodHS512)
	_, err = ParseToken(otherAlg)
	require.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "test-secret"})

	token, err := GenerateToken(1, "leo", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestBlacklistUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.False(t, IsTokenBlacklisted("abc"))
	BlacklistToken("abc", time.Now().Add(time.Hour))
	require.True(t, IsTokenBlacklisted("abc"))
	require.True(t, mr.Exists(blacklistPrefix+"abc"))

	mr.FastForward(2 * time.Hour)
	require.False(t, IsTokenBlacklisted("abc"))
}

func TestBlacklistFallsBackToMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	SetRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mr.Close()

	BlacklistToken("offline", time.Now().Add(time.Hour))
	require.True(t, IsTokenBlacklisted("offline"))
}

func TestPasswordHashing(t *testing.T) {
	_, err := HashPassword("short")
	require.ErrorIs(t, err, ErrWeakPassword)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.True(t, CheckPassword(hash, "correct horse"))
	require.False(t, CheckPassword(hash, "wrong horse"))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "hello", CleanText("  <script>alert(1)</script>hello "))
	require.Equal(t, "", CleanText("<script>x</script>"))
}

func TestRenderSuccessEnvelope(t *testing.T) {
	b, err := RenderSuccess(map[string]int{"n": 1})
	require.NoError(t, err)

	var resp JSONResponse
	require.NoError(t, json.Unmarshal(b, &resp))
	require.Equal(t, 0, resp.Code)
	require.Equal(t, "success", resp.Message)
}

func TestSavePostImage(t *testing.T) {
	dir := t.TempDir()

	header := multipartHeader(t, "small.gif", []byte("GIF89a"))
	rel, err := SavePostImage(dir, header)
	require.NoError(t, err)
	require.Equal(t, ".gif", filepath.Ext(rel))

	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	require.Equal(t, []byte("GIF89a"), data)

	_, err = SavePostImage(dir, multipartHeader(t, "evil.exe", []byte("MZ")))
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func multipartHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestRemovePostImage(t *testing.T) {
	dir := t.TempDir()
	rel, err := SavePostImage(dir, multipartHeader(t, "small.png", []byte("png")))
	require.NoError(t, err)

	require.NoError(t, RemovePostImage(dir, rel))
	_, err = os.Stat(filepath.Join(dir, rel))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, RemovePostImage(dir, rel))
	require.NoError(t, RemovePostImage(dir, ""))
	require.ErrorIs(t, RemovePostImage(dir, "../etc/passwd"), ErrUnsupportedImage)
}
