package data

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ssmRepository SSMRepository
)

func String(v string) *string {
	return &v
}

type MockSSMClient struct {
	TestSuccess bool
	Input       *ssm.GetParametersInput
}

func InitializeSSMClient(mock *MockSSMClient) SSMRepository {
	return &SSMDao{
		SSM:    mock,
		Region: "us-west-2",
		Logger: logrus.New(),
	}
}

func (m *MockSSMClient) GetParameters(ctx context.Context, input *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	m.Input = input
	if m.TestSuccess {
		result := &ssm.GetParametersOutput{
			Parameters: []types.Parameter{
				{
					Name:  String("param1"),
					Value: String("value1"),
				},
				{
					Name:  String("param2"),
					Value: String("value2"),
				},
			},
			InvalidParameters: []string{"param3"},
		}
		return result, nil
	}
	return nil, errors.New("error in GetParameters")
}

func Test_GetParameters_Success(t *testing.T) {
	//Arrange
	mock := &MockSSMClient{TestSuccess: true}
	ssmRepository = InitializeSSMClient(mock)

	//Act
	actual, err := ssmRepository.GetParameters(context.Background(), []string{"param1", "param2", "param3"})

	//Assert
	require.NoError(t, err)
	assert.Equal(t, "value1", actual["param1"])
	assert.Equal(t, "value2", actual["param2"])
	assert.NotContains(t, actual, "param3")
	assert.Equal(t, []string{"param1", "param2", "param3"}, mock.Input.Names)
	assert.True(t, *mock.Input.WithDecryption)
}

func Test_GetParameters_Failure(t *testing.T) {
	//Arrange
	ssmRepository = InitializeSSMClient(&MockSSMClient{TestSuccess: false})
	expected := "error getting parameters in us-west-2: error in GetParameters"

	//Act
	_, actual := ssmRepository.GetParameters(context.Background(), []string{"param1"})

	//Assert
	assert.Equal(t, expected, actual.Error())
}
