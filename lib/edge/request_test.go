package edge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/lib/models"
)

func TestVisitorID(t *testing.T) {
	tests := []struct {
		query  string
		status Status
		value  string
		reason string
	}{
		{"", Absent, "", ReasonNoVisitorParam},
		{"utm_source=mail", Absent, "", ReasonNoVisitorParam},
		{"visitor=", Absent, "", ReasonNoVisitorParam},
		{"visitor=abc123", Success, "abc123", ""},
		{"ref=x&visitor=abc-123_X&y=1", Success, "abc-123_X", ""},
		{"bad=%zz&visitor=abc123", Success, "abc123", ""},
		{"visitor=abc%40evil.com", Absent, "", ReasonInvalidLinkID},
		{"visitor=" + strings.Repeat("a", 129), Absent, "", ReasonInvalidLinkID},
	}

	for _, tt := range tests {
		r := VisitorID(tt.query, "visitor")
		assert.Equal(t, tt.status, r.Status, tt.query)
		assert.Equal(t, tt.value, r.Value, tt.query)
		assert.Equal(t, tt.reason, r.Reason, tt.query)
	}
}

func TestAugment_AttachesMarkersToCopy(t *testing.T) {
	//Arrange
	req := &CloudFrontRequest{URI: "/", QueryString: "visitor=abc123", Headers: Headers{
		"host": {{Key: "Host", Value: "example.com"}},
	}}
	credential := &models.SessionCredential{IDToken: "I", AccessToken: "A", ExpiresIn: 3600}

	//Act
	r := Augment(req, "abc123", credential)

	//Assert
	require.Equal(t, Success, r.Status)
	raw, ok := r.Value.Headers.Get("x-visitor-credentials")
	require.True(t, ok)
	assert.JSONEq(t, `{"idToken":"I","accessToken":"A","expiresIn":3600}`, raw)
	linkID, _ := r.Value.Headers.Get("x-visitor-link-id")
	assert.Equal(t, "abc123", linkID)
	host, _ := r.Value.Headers.Get("host")
	assert.Equal(t, "example.com", host)
	assert.Len(t, req.Headers, 1, "original request must not be mutated")
}

func TestAugment_NoCredential(t *testing.T) {
	req := &CloudFrontRequest{URI: "/", Headers: Headers{}}

	r := Augment(req, "abc123", nil)

	assert.Equal(t, Absent, r.Status)
	assert.Empty(t, req.Headers)
}

func TestAugment_ReadBackByResponsePhase(t *testing.T) {
	//Arrange
	req := &CloudFrontRequest{URI: "/", Headers: Headers{}}
	credential := &models.SessionCredential{IDToken: "I", AccessToken: "A", ExpiresIn: 3600}

	//Act
	augmented := Augment(req, "abc123", credential)
	r := transportMarkers(augmented.Value)

	//Assert
	require.Equal(t, Success, r.Status)
	assert.Equal(t, "abc123", r.Value.LinkID)
	assert.Equal(t, credential, r.Value.Credential)
}

func TestTransportMarkers(t *testing.T) {
	tests := []struct {
		name    string
		headers Headers
		status  Status
	}{
		{"none", Headers{}, Absent},
		{"credentials without link id", Headers{
			"x-visitor-credentials": {{Value: `{"idToken":"I","accessToken":"A","expiresIn":3600}`}},
		}, Failed},
		{"not json", Headers{
			"x-visitor-credentials": {{Value: `{not json`}},
			"x-visitor-link-id":     {{Value: "abc123"}},
		}, Failed},
		{"incomplete", Headers{
			"x-visitor-credentials": {{Value: `{"idToken":"I"}`}},
			"x-visitor-link-id":     {{Value: "abc123"}},
		}, Failed},
		{"valid", Headers{
			"x-visitor-credentials": {{Value: `{"idToken":"I","accessToken":"A","expiresIn":3600}`}},
			"x-visitor-link-id":     {{Value: "abc123"}},
		}, Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := transportMarkers(&CloudFrontRequest{Headers: tt.headers})
			assert.Equal(t, tt.status, r.Status)
		})
	}
}
