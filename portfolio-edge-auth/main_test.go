package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/lib/edge"
)

func Test_passThrough(t *testing.T) {
	req := &edge.CloudFrontRequest{URI: "/", QueryString: "visitor=abc123"}
	resp := &edge.CloudFrontResponse{Status: "200"}

	assert.Nil(t, passThrough(edge.CloudFrontEvent{}))
	assert.Same(t, req, passThrough(edge.CloudFrontEvent{Records: []edge.CloudFrontRecord{{CF: edge.CloudFrontPayload{Request: req}}}}))
	assert.Same(t, resp, passThrough(edge.CloudFrontEvent{Records: []edge.CloudFrontRecord{{CF: edge.CloudFrontPayload{Request: req, Response: resp}}}}))
}

func Test_Handler_DisabledPipelinePassesThrough(t *testing.T) {
	//Arrange
	saved := pipeline
	pipeline = nil
	defer func() { pipeline = saved }()
	req := &edge.CloudFrontRequest{URI: "/", QueryString: "visitor=abc123", Headers: edge.Headers{}}

	//Act
	out, err := Handler(context.Background(), edge.CloudFrontEvent{Records: []edge.CloudFrontRecord{{CF: edge.CloudFrontPayload{
		Config:  edge.CloudFrontConfig{EventType: "viewer-request"},
		Request: req,
	}}}})

	//Assert
	require.NoError(t, err)
	assert.Same(t, req, out)
}
