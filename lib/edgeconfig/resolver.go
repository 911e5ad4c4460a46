// Package edgeconfig resolves the Cognito identifiers and the visitor link table
// name. The identifiers live in SSM in the primary region; the table name lives in
// the region the edge replica runs in. Both lookups run concurrently.
package edgeconfig

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"portfolio/lib/data"
	"portfolio/lib/models"
	"portfolio/lib/settings"
)

// ErrConfiguration marks deployment defects, as opposed to per-visitor failures
var ErrConfiguration = errors.New("edge configuration error")

// MissingParametersError names every parameter absent from its region
type MissingParametersError struct {
	Keys []string // region:name
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("%v: missing parameters %s", ErrConfiguration, strings.Join(e.Keys, ", "))
}

func (e *MissingParametersError) Is(target error) bool {
	return target == ErrConfiguration
}

// ConfigResolver fetches a fresh EdgeConfig on every call
type ConfigResolver interface {
	Resolve(ctx context.Context) (*models.EdgeConfig, error)
}

type Resolver struct {
	Primary      data.SSMRepository
	Distribution data.SSMRepository
	Settings     settings.Settings
	Logger       *logrus.Logger
}

func (r *Resolver) Resolve(ctx context.Context) (*models.EdgeConfig, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.Settings.ConfigTimeout)
	defer cancel()

	primaryNames := []string{r.Settings.UserPoolIDParameter(), r.Settings.ClientIDParameter()}
	distributionNames := []string{r.Settings.LinkTableParameter()}

	var primary, distribution map[string]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		params, err := r.Primary.GetParameters(gctx, primaryNames)
		primary = params
		return err
	})
	g.Go(func() error {
		params, err := r.Distribution.GetParameters(gctx, distributionNames)
		distribution = params
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error resolving edge configuration: %w", err)
	}

	missing := append(
		missingKeys(r.Settings.PrimaryRegion, primary, primaryNames),
		missingKeys(r.Settings.DistributionRegion, distribution, distributionNames)...,
	)
	if len(missing) > 0 {
		return nil, &MissingParametersError{Keys: missing}
	}

	r.Logger.WithFields(logrus.Fields{
		"operation":           "Resolve",
		"primary_region":      r.Settings.PrimaryRegion,
		"distribution_region": r.Settings.DistributionRegion,
		"elapsed_ms":          time.Since(start).Milliseconds(),
	}).Info("Edge configuration resolved")

	return &models.EdgeConfig{
		UserPoolID:    primary[r.Settings.UserPoolIDParameter()],
		ClientID:      primary[r.Settings.ClientIDParameter()],
		LinkTableName: distribution[r.Settings.LinkTableParameter()],
	}, nil
}

func missingKeys(region string, params map[string]string, names []string) []string {
	var missing []string
	for _, name := range names {
		if params[name] == "" {
			missing = append(missing, region+":"+name)
		}
	}
	sort.Strings(missing)
	return missing
}
