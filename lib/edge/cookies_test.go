package edge

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cookieNow = time.Unix(1_700_000_000, 0)

func markedRequest(idToken string) *CloudFrontRequest {
	return &CloudFrontRequest{URI: "/", Headers: Headers{
		"x-visitor-credentials": {{Key: "X-Visitor-Credentials", Value: `{"idToken":"` + idToken + `","accessToken":"A","expiresIn":3600}`}},
		"x-visitor-link-id":     {{Key: "X-Visitor-Link-Id", Value: "abc123"}},
	}}
}

func cookieValues(headers Headers) []string {
	var out []string
	for _, h := range headers["set-cookie"] {
		out = append(out, h.Value)
	}
	return out
}

func findCookie(headers Headers, name string) string {
	for _, v := range cookieValues(headers) {
		if strings.HasPrefix(v, name+"=") {
			return v
		}
	}
	return ""
}

func TestCookieWriter_WritesSessionCookies(t *testing.T) {
	//Arrange
	w := &CookieWriter{Now: func() time.Time { return cookieNow }}
	resp := &CloudFrontResponse{Status: "200", Headers: Headers{
		"content-type": {{Key: "Content-Type", Value: "text/html"}},
	}}

	//Act
	r := w.Write(markedRequest("I"), resp)

	//Assert
	require.Equal(t, Success, r.Status)
	headers := r.Value.Headers
	assert.Equal(t, "IdToken=I; Path=/; Max-Age=3600; Secure; SameSite=Strict", findCookie(headers, "IdToken"))
	assert.Equal(t, "AccessToken=A; Path=/; Max-Age=3600; Secure; SameSite=Strict", findCookie(headers, "AccessToken"))
	assert.Equal(t, "LinkId=abc123; Path=/; Max-Age=3600; Secure; SameSite=Strict", findCookie(headers, "LinkId"))
	assert.Equal(t, "TokenExpiresAt=1700003600; Path=/; Max-Age=3600; Secure; SameSite=Strict", findCookie(headers, "TokenExpiresAt"))
	assert.Empty(t, findCookie(headers, "VisitorName"), "opaque ID token carries no name")
	for _, v := range cookieValues(headers) {
		assert.NotContains(t, v, "HttpOnly")
	}
	assert.Empty(t, resp.Headers["set-cookie"], "original response must not be mutated")
	assert.Equal(t, "200", r.Value.Status)
}

func TestCookieWriter_VisitorNameFromIDToken(t *testing.T) {
	//Arrange
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "visitor-sub",
		"name": "Ada Lovelace",
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	w := &CookieWriter{Now: func() time.Time { return cookieNow }}

	//Act
	r := w.Write(markedRequest(token), &CloudFrontResponse{Status: "200", Headers: Headers{}})

	//Assert
	require.Equal(t, Success, r.Status)
	assert.Equal(t, "VisitorName=Ada+Lovelace; Path=/; Max-Age=3600; Secure; SameSite=Strict", findCookie(r.Value.Headers, "VisitorName"))
}

func TestCookieWriter_Idempotent(t *testing.T) {
	//Arrange
	w := &CookieWriter{Now: func() time.Time { return cookieNow }}
	req := markedRequest("I")
	resp := &CloudFrontResponse{Status: "200", Headers: Headers{
		"set-cookie": {{Key: "Set-Cookie", Value: "theme=dark; Path=/"}},
	}}

	//Act
	first := w.Write(req, resp)
	second := w.Write(req, first.Value)

	//Assert
	require.Equal(t, Success, second.Status)
	assert.Equal(t, cookieValues(first.Value.Headers), cookieValues(second.Value.Headers))
	assert.Len(t, second.Value.Headers["set-cookie"], 5)
	assert.Equal(t, "theme=dark; Path=/", findCookie(second.Value.Headers, "theme"))
}

func TestCookieWriter_NoMarkers(t *testing.T) {
	w := &CookieWriter{}
	resp := &CloudFrontResponse{Status: "200", Headers: Headers{}}

	r := w.Write(&CloudFrontRequest{URI: "/", Headers: Headers{}}, resp)

	assert.Equal(t, Absent, r.Status)
	assert.Equal(t, ReasonTransportAbsent, r.Reason)
}
