// Command portfolio-edge-replay runs a CloudFront event through the edge auth
// pipeline from a workstation, against AWS or LocalStack (IS_LOCAL=true).
//
//	portfolio-edge-replay -event viewer-request.json
//	portfolio-edge-replay -event viewer-request.json -roundtrip
//
// With -roundtrip a viewer-request event is followed by a viewer-response for a
// synthetic 200 response, which shows the cookies a visitor would receive.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"portfolio/lib/constants"
	"portfolio/lib/edge"
	"portfolio/lib/edgeconfig"
	"portfolio/lib/settings"
	"portfolio/lib/util"
)

func main() {
	eventFile := flag.String("event", "-", "CloudFront event JSON file, - for stdin")
	roundTrip := flag.Bool("roundtrip", false, "follow a request event with the paired response event")
	flag.Parse()

	_ = godotenv.Load() // .env is optional

	s, err := settings.Load()
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	logger := util.NewLogger(s.LogLevel, true)
	logger.SetOutput(os.Stderr)

	event, err := readEvent(*eventFile)
	if err != nil {
		log.Fatalf("Failed to read event: %v", err)
	}

	ctx := context.Background()
	pipeline, err := edge.Setup(ctx, s, logger, edgeconfig.NoCache{})
	if err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	out, err := replay(ctx, pipeline, event, *roundTrip)
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func readEvent(name string) (edge.CloudFrontEvent, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return edge.CloudFrontEvent{}, err
		}
		defer f.Close()
		r = f
	}

	var event edge.CloudFrontEvent
	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return edge.CloudFrontEvent{}, fmt.Errorf("error decoding event: %w", err)
	}
	return event, nil
}

type handler interface {
	Handle(ctx context.Context, event edge.CloudFrontEvent) (interface{}, error)
}

func replay(ctx context.Context, h handler, event edge.CloudFrontEvent, roundTrip bool) (interface{}, error) {
	out, err := h.Handle(ctx, event)
	if err != nil || !roundTrip {
		return out, err
	}

	req, ok := out.(*edge.CloudFrontRequest)
	if !ok {
		return nil, fmt.Errorf("-roundtrip needs a request event, got %T", out)
	}
	config := event.Records[0].CF.Config
	config.EventType = constants.VIEWER_RESPONSE

	return h.Handle(ctx, edge.CloudFrontEvent{Records: []edge.CloudFrontRecord{{CF: edge.CloudFrontPayload{
		Config:  config,
		Request: req,
		Response: &edge.CloudFrontResponse{
			Status:            "200",
			StatusDescription: "OK",
			Headers:           edge.Headers{},
		},
	}}}})
}
