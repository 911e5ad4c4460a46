// Package auth trades a visitor link secret for a Cognito session.
//
// The edge function holds admin rights on the user pool, so it authenticates on
// behalf of the pre-provisioned visitor account with ADMIN_USER_PASSWORD_AUTH.
// The visitor never sees a login step; possession of the link is the credential.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/sirupsen/logrus"

	"portfolio/lib/models"
)

// Failure kinds reported by ExchangeError
const (
	KindRejected    = "rejected"    // the pool refused the account or secret
	KindUnavailable = "unavailable" // throttling, timeouts, service faults
	KindIncomplete  = "incomplete"  // a challenge or missing tokens instead of a session
)

// ExchangeError carries enough detail to tell a bad link from a provider outage
type ExchangeError struct {
	Kind string
	Err  error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("credential exchange %s: %v", e.Kind, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}

// Exchanger trades a username and secret for a session credential
type Exchanger interface {
	Exchange(ctx context.Context, username, secret, poolID, clientID string) (*models.SessionCredential, error)
}

type CognitoClientInterface interface {
	AdminInitiateAuth(ctx context.Context, params *cognitoidentityprovider.AdminInitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminInitiateAuthOutput, error)
}

var _ CognitoClientInterface = (*cognitoidentityprovider.Client)(nil)

type CognitoExchanger struct {
	Cognito CognitoClientInterface
	Logger  *logrus.Logger
}

// Username derives the synthetic pool username for a visitor link
func Username(linkID, domain string) string {
	return linkID + "@" + domain
}

// Exchange performs one admin authentication. It is never retried here; the
// caller decides what a failure means for the page.
func (e *CognitoExchanger) Exchange(ctx context.Context, username, secret, poolID, clientID string) (*models.SessionCredential, error) {
	output, err := e.Cognito.AdminInitiateAuth(ctx, &cognitoidentityprovider.AdminInitiateAuthInput{
		AuthFlow:   types.AuthFlowTypeAdminUserPasswordAuth,
		UserPoolId: aws.String(poolID),
		ClientId:   aws.String(clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": secret,
		},
	})
	if err != nil {
		return nil, &ExchangeError{Kind: classify(err), Err: err}
	}

	if output.ChallengeName != "" {
		return nil, &ExchangeError{
			Kind: KindIncomplete,
			Err:  fmt.Errorf("unexpected challenge %s", output.ChallengeName),
		}
	}

	result := output.AuthenticationResult
	if result == nil {
		return nil, &ExchangeError{Kind: KindIncomplete, Err: errors.New("authentication result missing")}
	}

	credential := &models.SessionCredential{
		IDToken:     aws.ToString(result.IdToken),
		AccessToken: aws.ToString(result.AccessToken),
		ExpiresIn:   result.ExpiresIn,
	}
	if !credential.Complete() {
		return nil, &ExchangeError{Kind: KindIncomplete, Err: errors.New("authentication result missing tokens")}
	}

	e.Logger.WithFields(logrus.Fields{
		"operation":  "Exchange",
		"username":   username,
		"expires_in": credential.ExpiresIn,
	}).Debug("Credential exchange succeeded")
	return credential, nil
}

// classify separates account or secret problems from provider trouble
func classify(err error) string {
	var notAuthorized *types.NotAuthorizedException
	var userNotFound *types.UserNotFoundException
	var notConfirmed *types.UserNotConfirmedException
	var resetRequired *types.PasswordResetRequiredException
	switch {
	case errors.As(err, &notAuthorized),
		errors.As(err, &userNotFound),
		errors.As(err, &notConfirmed),
		errors.As(err, &resetRequired):
		return KindRejected
	default:
		return KindUnavailable
	}
}
