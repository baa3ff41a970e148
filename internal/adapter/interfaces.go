// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer for communicating with an
// Exchange Web Services endpoint.
//
// The primary abstraction is [Transport], which decouples entities and
// collections from the wire. The package ships a SOAP-over-HTTP
// implementation ([NewSOAPTransport]) that wraps operations in the request
// envelope, inspects every response for protocol-level fault codes, and
// retries transient server faults up to a configured bound.
//
// Error values defined in errors.go are mapped from Exchange ResponseCode
// values by the fault classifier so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrStaleChangeKey] before a
// refresh, [ErrItemNotFound] for dangling ids).
package adapter

import (
	"context"

	"github.com/beevik/etree"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport sends one prepared EWS operation and returns the parsed response
// document.
type Transport interface {
	// Send wraps operation in a SOAP envelope, posts it to the Exchange
	// endpoint and parses the response. Every response is run through the
	// fault classifier: a non-success ResponseCode surfaces as one of the
	// sentinel errors in this package, and [ErrTransient] faults are retried
	// up to the configured bound before being returned. A response without
	// any ResponseCode element fails with [ErrMissingResponseCode] regardless
	// of payload content.
	Send(ctx context.Context, operation *etree.Element) (*etree.Document, error)
}
