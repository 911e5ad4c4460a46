// Package main implements the Lambda@Edge invisible authentication function.
//
// The same binary is associated with both the viewer-request and viewer-response
// triggers of the portfolio distribution and dispatches on the event type:
//
//   - viewer-request: a page load carrying ?visitor=<linkId> is exchanged for a
//     Cognito session (SSM config -> DynamoDB link -> AdminInitiateAuth) and the
//     tokens ride along on the request as transport headers.
//   - viewer-response: the transport headers become Set-Cookie directives.
//
// Failure policy: the page always renders. Any failure on either phase passes the
// original request or response through and is only reported in the logs.
//
// Lambda@Edge cannot carry environment variables, so settings fall back to their
// compiled defaults. Stage and regions are settings, not separate builds.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"portfolio/lib/edge"
	"portfolio/lib/edgeconfig"
	"portfolio/lib/settings"
	"portfolio/lib/util"
)

// Global variables for Lambda cold start optimization
var (
	logger   *logrus.Logger        // Structured logger
	pipeline *edge.Pipeline        // nil when cold start setup failed; every event then passes through
	cache    *edgeconfig.OnceCache // EdgeConfig for the life of this execution environment
)

// Handler processes one CloudFront event
func Handler(ctx context.Context, event edge.CloudFrontEvent) (interface{}, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok && logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithFields(logrus.Fields{
			"operation":  "Handler",
			"request_id": lc.AwsRequestID,
		}).Debug("Processing CloudFront event")
	}

	if pipeline == nil {
		return passThrough(event), nil
	}
	return pipeline.Handle(ctx, event)
}

func passThrough(event edge.CloudFrontEvent) interface{} {
	if len(event.Records) == 0 {
		return nil
	}
	cf := event.Records[0].CF
	if cf.Response != nil {
		return cf.Response
	}
	return cf.Request
}

func main() {
	lambda.Start(Handler)
}

// init builds the pipeline once per execution environment. A setup failure is
// logged and the function keeps serving as a pass-through.
func init() {
	cache = &edgeconfig.OnceCache{}

	s, err := settings.Load()
	if err != nil {
		logger = util.NewLogger("error", false)
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Error("Invalid settings, edge authentication disabled")
		return
	}

	logger = util.NewLogger(s.LogLevel, s.IsLocal)

	pipeline, err = edge.Setup(context.Background(), s, logger, cache)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"operation": "init",
			"error":     err.Error(),
		}).Error("Error setting up AWS clients, edge authentication disabled")
		return
	}

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithFields(logrus.Fields{
			"operation":           "init",
			"stage":               s.Stage,
			"primary_region":      s.PrimaryRegion,
			"distribution_region": s.DistributionRegion,
		}).Debug("Edge auth Lambda initialized")
	}
}
