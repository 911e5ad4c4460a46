package models

// EdgeConfig is resolved once per execution environment from two SSM regions
type EdgeConfig struct {
	ClientID      string // Cognito app client (primary region)
	UserPoolID    string // Cognito user pool (primary region)
	LinkTableName string // visitor link table (distribution region)
}
