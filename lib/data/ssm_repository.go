package data

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/sirupsen/logrus"
)

// SSMRepository looks up a fixed batch of named parameters in one region
type SSMRepository interface {
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

type SSMClientInterface interface {
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

type SSMDao struct {
	SSM    SSMClientInterface
	Region string
	Logger *logrus.Logger
}

// GetParameters returns the decrypted values of the parameters that exist.
// Names SSM reports as invalid are left out of the map; deciding whether that
// is fatal belongs to the caller.
func (client *SSMDao) GetParameters(ctx context.Context, names []string) (map[string]string, error) {
	params := map[string]string{}
	output, err := client.SSM.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          names,
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting parameters in %s: %w", client.Region, err)
	}

	for _, param := range output.Parameters {
		if param.Name == nil || param.Value == nil {
			continue
		}
		params[*param.Name] = *param.Value
	}

	if len(output.InvalidParameters) > 0 {
		client.Logger.WithFields(logrus.Fields{
			"operation":          "GetParameters",
			"region":             client.Region,
			"invalid_parameters": output.InvalidParameters,
		}).Debug("SSM reported invalid parameters")
	}
	return params, nil
}
