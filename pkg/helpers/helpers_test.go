package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard/pkg/mailer"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.Issue("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	uid, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, _, err := m.Issue("user-1")
	require.NoError(t, err)

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue("user-1")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"other secret": func() string { s, _, _ := NewJWTManager("other", time.Hour).Issue("user-1"); return s }(),
		"expired":      old,
		"alg none":     none,
		"tampered":     tok + "x",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer   abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken(""))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CompareHashAndPassword(hash, "s3cret!"))
	assert.False(t, CompareHashAndPassword(hash, "S3cret!"))
	assert.False(t, CompareHashAndPassword("", ""))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "hello world", PlainText("  <b>hello</b> <i>world</i> "))
	assert.Equal(t, "a < b & c", PlainText("a < b & c"))
	assert.Equal(t, "", PlainText("<script>alert(1)</script>"))
	assert.Equal(t, []string{"go", "k8s"}, PlainTextList([]string{"<em>go</em>", " ", "k8s"}))
}

func TestEmailJobNormalization(t *testing.T) {
	job := &mailer.EmailJob{To: "a@example.com", Data: map[string]any{"Type": " Welcome "}}
	NormalizeTemplate(job)
	EnsureRecipientAndEmail(job)
	assert.Equal(t, "welcome", job.Template)
	assert.Equal(t, "a@example.com", job.Data["Email"])
	assert.Equal(t, "a@example.com", job.Data["RecipientEmail"])
}
