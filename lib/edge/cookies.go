package edge

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio/lib/constants"
)

// CookieWriter turns the transport headers on a request into Set-Cookie headers.
//
// The cookies are deliberately not HttpOnly: the static frontend reads them from
// script to authorize its own API calls. SameSite=Strict and the short Max-Age
// are what protect them.
type CookieWriter struct {
	Now func() time.Time
}

// Write returns a copy of resp with the session cookies, or Absent when req
// carries no transport headers. Writing a cookie replaces any Set-Cookie of the
// same name, so writing twice gives the same headers as writing once.
func (w *CookieWriter) Write(req *CloudFrontRequest, resp *CloudFrontResponse) Result[*CloudFrontResponse] {
	return Then(transportMarkers(req), func(t transport) Result[*CloudFrontResponse] {
		maxAge := int(t.Credential.ExpiresIn)
		cookies := []*http.Cookie{
			sessionCookie(constants.ID_TOKEN_COOKIE, t.Credential.IDToken, maxAge),
			sessionCookie(constants.ACCESS_TOKEN_COOKIE, t.Credential.AccessToken, maxAge),
			sessionCookie(constants.LINK_ID_COOKIE, t.LinkID, maxAge),
			sessionCookie(constants.TOKEN_EXPIRES_AT_COOKIE,
				strconv.FormatInt(w.now().Add(time.Duration(maxAge)*time.Second).Unix(), 10), maxAge),
		}
		if name := visitorName(t.Credential.IDToken); name != "" {
			cookies = append(cookies, sessionCookie(constants.VISITOR_NAME_COOKIE, url.QueryEscape(name), maxAge))
		}

		headers := resp.Headers.Clone()
		for _, cookie := range cookies {
			setCookie(headers, cookie)
		}
		return Ok(resp.WithHeaders(headers))
	})
}

func (w *CookieWriter) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

func setCookie(headers Headers, cookie *http.Cookie) {
	const key = "set-cookie"
	prefix := cookie.Name + "="
	kept := headers[key][:0:0]
	for _, existing := range headers[key] {
		if !strings.HasPrefix(existing.Value, prefix) {
			kept = append(kept, existing)
		}
	}
	headers[key] = append(kept, Header{Key: "Set-Cookie", Value: cookie.String()})
}

// visitorName reads the display name from the ID token. The token came straight
// from Cognito over TLS on the request phase, so its signature is not checked here.
func visitorName(idToken string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return ""
	}
	name, _ := claims["name"].(string)
	return name
}
