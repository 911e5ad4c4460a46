package edge

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"portfolio/lib/auth"
	"portfolio/lib/clients"
	"portfolio/lib/data"
	"portfolio/lib/edgeconfig"
	"portfolio/lib/settings"
)

// Setup wires a Pipeline against AWS. Cognito and the Cognito parameters live in
// the primary region; the link table and its parameter live in the region the
// function executes in.
func Setup(ctx context.Context, s settings.Settings, logger *logrus.Logger, cache edgeconfig.Cache) (*Pipeline, error) {
	primaryCfg, err := clients.LoadAWSConfig(ctx, s.PrimaryRegion, s.IsLocal, s.LocalEndpoint)
	if err != nil {
		return nil, err
	}
	distributionCfg, err := clients.LoadAWSConfig(ctx, s.DistributionRegion, s.IsLocal, s.LocalEndpoint)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		Settings: s,
		Resolver: &edgeconfig.Resolver{
			Primary: &data.SSMDao{
				SSM:    clients.NewSSMClient(primaryCfg),
				Region: s.PrimaryRegion,
				Logger: logger,
			},
			Distribution: &data.SSMDao{
				SSM:    clients.NewSSMClient(distributionCfg),
				Region: s.DistributionRegion,
				Logger: logger,
			},
			Settings: s,
			Logger:   logger,
		},
		Cache: cache,
		Links: &data.LinkDao{
			DynamoDB: clients.NewDynamoDBClient(distributionCfg),
			Logger:   logger,
		},
		Exchanger: &auth.CognitoExchanger{
			Cognito: clients.NewCognitoClient(primaryCfg),
			Logger:  logger,
		},
		Cookies: &CookieWriter{Now: time.Now},
		Logger:  logger,
	}, nil
}
