package edge

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"portfolio/lib/auth"
	"portfolio/lib/constants"
	"portfolio/lib/data"
	"portfolio/lib/edgeconfig"
	"portfolio/lib/models"
	"portfolio/lib/settings"
	"portfolio/lib/util"
)

// Pipeline sequences the request and response phases. It keeps no state between
// invocations apart from the EdgeConfig held by Cache.
type Pipeline struct {
	Settings  settings.Settings
	Resolver  edgeconfig.ConfigResolver
	Cache     edgeconfig.Cache
	Links     data.LinkRepository
	Exchanger auth.Exchanger
	Cookies   *CookieWriter
	Logger    *logrus.Logger
}

// Handle dispatches one CloudFront event. Request events return the request to
// forward and response events return the response to send. A malformed event is
// passed through as far as it carries a payload; an error is returned only when
// there is nothing to return.
func (p *Pipeline) Handle(ctx context.Context, event CloudFrontEvent) (interface{}, error) {
	if len(event.Records) == 0 {
		return p.malformed(CloudFrontPayload{}, "cloudfront event has no records")
	}
	cf := event.Records[0].CF

	switch cf.Config.EventType {
	case constants.VIEWER_REQUEST, constants.ORIGIN_REQUEST:
		if cf.Request == nil {
			return p.malformed(cf, "request event without request")
		}
		return p.HandleRequest(ctx, cf.Config.RequestID, cf.Request), nil
	case constants.VIEWER_RESPONSE, constants.ORIGIN_RESPONSE:
		if cf.Response == nil {
			return p.malformed(cf, "response event without response")
		}
		return p.HandleResponse(ctx, cf.Config.RequestID, cf.Request, cf.Response), nil
	default:
		p.Logger.WithFields(logrus.Fields{
			"operation":  "Handle",
			"event_type": cf.Config.EventType,
		}).Warn("Unsupported event type, returning payload unchanged")
		if cf.Response != nil {
			return cf.Response, nil
		}
		return cf.Request, nil
	}
}

func (p *Pipeline) malformed(cf CloudFrontPayload, problem string) (interface{}, error) {
	p.Logger.WithFields(logrus.Fields{
		"operation":      "Handle",
		"event_type":     cf.Config.EventType,
		"correlation_id": cf.Config.RequestID,
	}).Error(problem)

	switch {
	case cf.Response != nil:
		return cf.Response, nil
	case cf.Request != nil:
		return cf.Request, nil
	}
	return nil, errors.New(problem)
}

// HandleRequest returns req augmented with session transport headers, or req
// itself when anything short of a full exchange happens.
func (p *Pipeline) HandleRequest(ctx context.Context, requestID string, req *CloudFrontRequest) *CloudFrontRequest {
	if IsStaticAsset(req.URI) || !strings.Contains(req.QueryString, p.Settings.VisitorQueryParam+"=") {
		return req
	}

	log := p.invocationLogger(constants.VIEWER_REQUEST, requestID, req)
	return FailOpen(req, func() Result[*CloudFrontRequest] {
		return p.authenticate(ctx, log, req)
	}, func(r Result[*CloudFrontRequest]) {
		p.report(log, "HandleRequest", r.Status, r.Reason, r.Err)
	})
}

// HandleResponse returns resp with session cookies when req carries transport
// headers, and resp itself otherwise.
func (p *Pipeline) HandleResponse(ctx context.Context, requestID string, req *CloudFrontRequest, resp *CloudFrontResponse) *CloudFrontResponse {
	if req == nil || IsStaticAsset(req.URI) {
		return resp
	}
	if _, ok := req.Headers.Get(constants.CREDENTIALS_HEADER); !ok {
		return resp
	}

	log := p.invocationLogger(constants.VIEWER_RESPONSE, requestID, req)
	return FailOpen(resp, func() Result[*CloudFrontResponse] {
		return p.Cookies.Write(req, resp)
	}, func(r Result[*CloudFrontResponse]) {
		p.report(log, "HandleResponse", r.Status, r.Reason, r.Err)
	})
}

func (p *Pipeline) authenticate(ctx context.Context, log *logrus.Entry, req *CloudFrontRequest) Result[*CloudFrontRequest] {
	visitor := VisitorID(req.QueryString, p.Settings.VisitorQueryParam)
	if visitor.Status != Success {
		return Result[*CloudFrontRequest]{Status: visitor.Status, Reason: visitor.Reason}
	}
	linkID := visitor.Value
	log = log.WithField("link_id", linkID)

	type linked struct {
		cfg  *models.EdgeConfig
		link *models.VisitorLink
	}

	configured := p.config(ctx)
	found := Then(configured, func(cfg *models.EdgeConfig) Result[linked] {
		link := p.lookup(ctx, cfg, linkID)
		return Then(link, func(l *models.VisitorLink) Result[linked] {
			return Ok(linked{cfg: cfg, link: l})
		})
	})
	credential := Then(found, func(l linked) Result[*models.SessionCredential] {
		return p.exchange(ctx, l.cfg, linkID, l.link.Secret)
	})
	return Then(credential, func(c *models.SessionCredential) Result[*CloudFrontRequest] {
		log.WithField("access_token", util.MaskSecret(c.AccessToken)).Debug("Attaching session to request")
		return Augment(req, linkID, c)
	})
}

func (p *Pipeline) config(ctx context.Context) Result[*models.EdgeConfig] {
	cfg, err := p.Cache.GetOrResolve(ctx, p.Resolver)
	switch {
	case errors.Is(err, edgeconfig.ErrConfiguration):
		return Fail[*models.EdgeConfig](ReasonConfigMissing, err)
	case err != nil:
		return Fail[*models.EdgeConfig](ReasonConfigUnavailable, err)
	}
	return Ok(cfg)
}

func (p *Pipeline) lookup(ctx context.Context, cfg *models.EdgeConfig, linkID string) Result[*models.VisitorLink] {
	ctx, cancel := context.WithTimeout(ctx, p.Settings.LinkTimeout)
	defer cancel()

	link, err := p.Links.GetLink(ctx, cfg.LinkTableName, linkID)
	switch {
	case err != nil:
		return Fail[*models.VisitorLink](ReasonLinkLookupFailed, err)
	case link == nil:
		return None[*models.VisitorLink](ReasonLinkNotFound)
	case link.Secret == "":
		return None[*models.VisitorLink](ReasonLinkWithoutSecret)
	}
	return Ok(link)
}

func (p *Pipeline) exchange(ctx context.Context, cfg *models.EdgeConfig, linkID, secret string) Result[*models.SessionCredential] {
	ctx, cancel := context.WithTimeout(ctx, p.Settings.ExchangeTimeout)
	defer cancel()

	username := auth.Username(linkID, p.Settings.UsernameDomain)
	credential, err := p.Exchanger.Exchange(ctx, username, secret, cfg.UserPoolID, cfg.ClientID)
	if err != nil {
		return Fail[*models.SessionCredential](ReasonExchangeFailed, err)
	}
	return Ok(credential)
}

func (p *Pipeline) invocationLogger(eventType, requestID string, req *CloudFrontRequest) *logrus.Entry {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	fields := logrus.Fields{
		"correlation_id": requestID,
		"event_type":     eventType,
	}
	if req != nil {
		fields["uri"] = req.URI
	}
	return p.Logger.WithFields(fields)
}

// report decides severity. Configuration defects are loud; unknown links are routine.
func (p *Pipeline) report(log *logrus.Entry, operation string, status Status, reason string, err error) {
	entry := log.WithFields(logrus.Fields{
		"operation": operation,
		"status":    status.String(),
		"reason":    reason,
	})
	if err != nil {
		entry = entry.WithError(err)
	}

	switch {
	case status == Success:
		entry.Info("Visitor session handled")
	case reason == ReasonConfigMissing || reason == ReasonConfigUnavailable || reason == ReasonPanic:
		entry.Error("Edge authentication disabled for this invocation, passing through")
	case reason == ReasonExchangeFailed:
		var exchangeErr *auth.ExchangeError
		if errors.As(err, &exchangeErr) {
			entry = entry.WithField("failure_kind", exchangeErr.Kind)
		}
		entry.Warn("Credential exchange failed, passing through")
	case status == Failed:
		entry.Warnf("%s, passing through", reason)
	case reason == ReasonLinkNotFound || reason == ReasonLinkWithoutSecret || reason == ReasonInvalidLinkID:
		entry.Info("Visitor link not usable, passing through")
	default:
		entry.Debug("Nothing to do")
	}
}
