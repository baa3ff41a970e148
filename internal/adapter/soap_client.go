// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/beevik/etree"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/exchangekit/go-ews/internal/logger"
	"github.com/exchangekit/go-ews/internal/soap"
)

// SOAPConfig holds the connection settings for an Exchange endpoint.
type SOAPConfig struct {
	// Endpoint is the full EWS URL, e.g. https://mail.example.com/EWS/Exchange.asmx.
	Endpoint string
	// Username and Password authenticate every request via HTTP Basic auth.
	Username string
	Password string
	// Timeout bounds each HTTP round trip.
	Timeout time.Duration
	// Retries is how many additional attempts a transient server fault gets
	// before being surfaced to the caller.
	Retries uint
}

type soapTransport struct {
	client  *resty.Client
	retries uint
	log     *logger.Logger
}

// NewSOAPTransport returns a Transport that talks to the configured Exchange
// endpoint. A nil log disables diagnostics.
func NewSOAPTransport(cfg SOAPConfig, log *logger.Logger) Transport {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retries == 0 {
		cfg.Retries = 2
	}
	if log == nil {
		log = logger.Nop()
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetHeader("Accept", "text/xml").
		SetHeader("Content-Type", "text/xml; charset=utf-8")

	return &soapTransport{client: cli, retries: cfg.Retries, log: log}
}

func (t *soapTransport) Send(ctx context.Context, operation *etree.Element) (*etree.Document, error) {
	payload, err := soap.Envelope(operation).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize soap request: %w", err)
	}

	traceID := uuid.NewString()
	log := t.log.With().Str("trace_id", traceID).Str("operation", operation.Tag).Logger()

	var doc *etree.Document
	err = retry.Do(
		func() error {
			resp, err := t.client.R().
				SetContext(ctx).
				SetBody(payload).
				Post("")
			if err != nil {
				return fmt.Errorf("send soap request: %w", err)
			}

			parsed, err := parseResponse(resp)
			if err != nil {
				return err
			}
			if err = classifyFaults(parsed); err != nil {
				return err
			}

			doc = parsed
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(t.retries+1),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrTransient) }),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn().Uint("attempt", attempt+1).Err(err).Msg("retrying transient exchange fault")
		}),
	)
	if err != nil {
		return nil, err
	}

	log.Debug().Msg("exchange request completed")
	return doc, nil
}

// parseResponse turns the HTTP response into an XML document. Exchange
// reports many faults with a 500 status and a SOAP body, so a non-2xx status
// alone is not an error as long as the body parses; the fault classifier
// decides from the ResponseCode.
func parseResponse(resp *resty.Response) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(resp.Body()); err != nil || doc.Root() == nil {
		if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
			body := strings.TrimSpace(string(resp.Body()))
			if body == "" {
				body = http.StatusText(resp.StatusCode())
			}
			return nil, fmt.Errorf("http %d: %s", resp.StatusCode(), body)
		}
		if err == nil {
			err = errors.New("empty document")
		}
		return nil, fmt.Errorf("parse soap response: %w", err)
	}
	return doc, nil
}
