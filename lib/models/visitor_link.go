package models

import "time"

// VisitorLink is the record written upstream by the link issuance tooling.
// The edge functions only ever read it.
type VisitorLink struct {
	LinkID    string `json:"linkId" dynamodbav:"linkId"`
	Secret    string `json:"secret" dynamodbav:"secret"`
	CreatedAt string `json:"createdAt,omitempty" dynamodbav:"createdAt,omitempty"`
	TTL       int64  `json:"ttl,omitempty" dynamodbav:"ttl,omitempty"`
}

// Expired reports whether the record's TTL has passed. DynamoDB deletes expired
// items lazily, so a read can still return one.
func (l *VisitorLink) Expired(now time.Time) bool {
	return l.TTL > 0 && now.Unix() >= l.TTL
}
