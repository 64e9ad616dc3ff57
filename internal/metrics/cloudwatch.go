package metrics

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "Chordgen/API"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// metricPutter is the subset of the CloudWatch client used here
type metricPutter interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      metricPutter
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are sent to CloudWatch
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}
	go m.recordAPIRequest(context.Background(), endpoint, statusCode, duration)
}

func (m *Client) recordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	// Determine if success or error
	metricName := "APIRequests"
	if statusCode >= httpStatusServerError {
		metricName = "APIErrors"
	}

	dimensions := []types.Dimension{
		{
			Name:  aws.String("Endpoint"),
			Value: aws.String(endpoint),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}

	// Record count
	if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
		log.Printf("Failed to record %s metric: %v", metricName, err)
	}

	// Record duration
	latencyMs := float64(duration.Milliseconds())
	if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
		log.Printf("Failed to record APILatency metric: %v", err)
	}
}

// RecordGeneration records one progression generation. errorKind is empty on success.
func (m *Client) RecordGeneration(bars int, duration time.Duration, errorKind string) {
	if !m.Enabled() {
		return
	}
	go m.recordGeneration(context.Background(), bars, duration, errorKind)
}

func (m *Client) recordGeneration(ctx context.Context, bars int, duration time.Duration, errorKind string) {
	success := errorKind == ""
	dimensions := []types.Dimension{
		{
			Name:  aws.String("Success"),
			Value: aws.String(strconv.FormatBool(success)),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}

	if !success {
		failure := append(dimensions, types.Dimension{
			Name:  aws.String("ErrorKind"),
			Value: aws.String(errorKind),
		})
		if err := m.putMetric(ctx, "GenerationFailures", 1, types.StandardUnitCount, failure); err != nil {
			log.Printf("Failed to record GenerationFailures metric: %v", err)
		}
		return
	}

	if err := m.putMetric(ctx, "Generations", 1, types.StandardUnitCount, dimensions); err != nil {
		log.Printf("Failed to record Generations metric: %v", err)
	}
	if err := m.putMetric(ctx, "GenerationBars", float64(bars), types.StandardUnitCount, dimensions); err != nil {
		log.Printf("Failed to record GenerationBars metric: %v", err)
	}

	durationMs := float64(duration.Microseconds()) / 1000
	if err := m.putMetric(ctx, "GenerationDuration", durationMs, types.StandardUnitMilliseconds, dimensions); err != nil {
		log.Printf("Failed to record GenerationDuration metric: %v", err)
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	// Create context with timeout for CloudWatch call
	timeout := time.Duration(cloudwatchTimeoutSeconds) * time.Second
	cwCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
