package edge

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"portfolio/lib/constants"
	"portfolio/lib/models"
)

const maxLinkIDLength = 128

// VisitorID pulls the link identifier out of a raw query string. Most page loads
// carry no query at all, so the substring check short-circuits before parsing.
func VisitorID(rawQuery, param string) Result[string] {
	if rawQuery == "" || !strings.Contains(rawQuery, param+"=") {
		return None[string](ReasonNoVisitorParam)
	}
	// ParseQuery keeps every well-formed pair, so a malformed pair elsewhere in
	// the query does not hide the visitor parameter.
	values, _ := url.ParseQuery(rawQuery)
	linkID := values.Get(param)
	if linkID == "" {
		return None[string](ReasonNoVisitorParam)
	}
	if !validLinkID(linkID) {
		return None[string](ReasonInvalidLinkID)
	}
	return Ok(linkID)
}

func validLinkID(linkID string) bool {
	if len(linkID) > maxLinkIDLength {
		return false
	}
	for _, r := range linkID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Augment returns a copy of req carrying the serialized credential and the link id.
// The response phase only sees what rides along on the request. A nil or incomplete
// credential leaves req as it is.
func Augment(req *CloudFrontRequest, linkID string, credential *models.SessionCredential) Result[*CloudFrontRequest] {
	if !credential.Complete() {
		return None[*CloudFrontRequest](ReasonExchangeFailed)
	}
	payload, err := json.Marshal(credential)
	if err != nil {
		return Fail[*CloudFrontRequest](ReasonSerializationFailed, fmt.Errorf("error marshaling credential: %w", err))
	}

	headers := req.Headers.Clone()
	headers.Set(constants.CREDENTIALS_HEADER, string(payload))
	headers.Set(constants.LINK_ID_HEADER, linkID)
	return Ok(req.WithHeaders(headers))
}

// transportMarkers reads back what Augment attached
func transportMarkers(req *CloudFrontRequest) Result[transport] {
	if req == nil {
		return None[transport](ReasonTransportAbsent)
	}
	raw, ok := req.Headers.Get(constants.CREDENTIALS_HEADER)
	if !ok {
		return None[transport](ReasonTransportAbsent)
	}
	linkID, ok := req.Headers.Get(constants.LINK_ID_HEADER)
	if !ok || linkID == "" {
		return Fail[transport](ReasonTransportMalformed, fmt.Errorf("%s present without %s", constants.CREDENTIALS_HEADER, constants.LINK_ID_HEADER))
	}

	var credential models.SessionCredential
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return Fail[transport](ReasonTransportMalformed, fmt.Errorf("error unmarshaling credential: %w", err))
	}
	if !credential.Complete() {
		return Fail[transport](ReasonTransportMalformed, fmt.Errorf("credential incomplete"))
	}
	return Ok(transport{LinkID: linkID, Credential: &credential})
}

type transport struct {
	LinkID     string
	Credential *models.SessionCredential
}
