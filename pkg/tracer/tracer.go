// Copyright (c) 2026 Namechain Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package tracer

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	_service     = "namechain-core"
	_environment = "devnet"
	_id          = 1
)

// Config is the config for tracer
type Config struct {
	ServiceName string `yaml:"serviceName"`
	EndPoint    string `yaml:"endpoint"`
	InstanceID  string `yaml:"instanceID"`
	// SamplingRatio customizes the ratio of spans sampled, in range [0.0, 1.0];
	// empty means always sample
	SamplingRatio string `yaml:"samplingRatio"`
}

// Option is the tracer provider option
type Option func(ops *optionParams) error

type optionParams struct {
	serviceName   string
	endpoint      string
	instanceID    string
	samplingRatio string
}

// WithServiceName defines the service name
func WithServiceName(name string) Option {
	return func(ops *optionParams) error {
		ops.serviceName = name
		return nil
	}
}

// WithEndpoint defines the full URL to the Jaeger HTTP Thrift collector
func WithEndpoint(endpoint string) Option {
	return func(ops *optionParams) error {
		ops.endpoint = endpoint
		return nil
	}
}

// WithInstanceID defines the instance id
func WithInstanceID(instanceID string) Option {
	return func(ops *optionParams) error {
		ops.instanceID = instanceID
		return nil
	}
}

// WithSamplingRatio defines the sampling ratio
func WithSamplingRatio(samplingRatio string) Option {
	return func(ops *optionParams) error {
		ops.samplingRatio = samplingRatio
		return nil
	}
}

// NewProvider returns an OpenTelemetry TracerProvider configured to use the
// Jaeger exporter that sends spans to the provided endpoint. A nil provider
// with no error means tracing is disabled.
func NewProvider(opts ...Option) (*tracesdk.TracerProvider, error) {
	var (
		err          error
		ops          optionParams
		tracerOption []tracesdk.TracerProviderOption
	)

	for _, opt := range opts {
		if err = opt(&ops); err != nil {
			return nil, err
		}
	}
	if ops.serviceName == "" {
		ops.serviceName = _service
	}
	if ops.instanceID == "" {
		ops.instanceID = strconv.Itoa(_id)
	}
	if ops.endpoint == "" {
		return nil, nil
	}
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(ops.endpoint)))
	if err != nil {
		return nil, err
	}
	if ops.samplingRatio != "" {
		ratio, err := strconv.ParseFloat(ops.samplingRatio, 64)
		if err != nil {
			return nil, err
		}
		tracerOption = append(tracerOption, tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(ratio))))
	}
	tracerOption = append(tracerOption,
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(ops.serviceName),
			attribute.String("environment", _environment),
			attribute.String("instanceID", ops.instanceID),
		)),
	)
	tp := tracesdk.NewTracerProvider(tracerOption...)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// NewSpan starts a span from the global tracer provider, a noop span when
// tracing is disabled
func NewSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(_service).Start(ctx, name, opts...)
}

// SpanFromContext returns the current span from the context
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
