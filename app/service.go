package app

import (
	"context"
	"fmt"

	"github.com/tabibiq/matchengine/config"
	"github.com/tabibiq/matchengine/core/match"
	coremetrics "github.com/tabibiq/matchengine/core/metrics"
	"github.com/tabibiq/matchengine/core/model"
	"github.com/tabibiq/matchengine/core/notify"
	"github.com/tabibiq/matchengine/infra/logger"
	"github.com/tabibiq/matchengine/infra/metrics"
	"github.com/tabibiq/matchengine/infra/mqtt"
	"github.com/tabibiq/matchengine/internal/eventbus"
)

// Service wires the matching engine to its transport and observability
// adapters. The engine stays an in-process library; the service owns the
// MQTT feed that brings requests in and pushes allocations out.
type Service struct {
	Engine      *match.Engine
	client      *mqtt.PahoClient
	notifier    notify.Notifier
	bus         eventbus.EventBus
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := match.NewEngine(cfg.Match, logg, sink, bus)
	if err != nil {
		return nil, fmt.Errorf("match engine: %w", err)
	}

	client, err := mqtt.NewPahoClient(cfg.MQTT)
	if err != nil {
		return nil, fmt.Errorf("mqtt client: %w", err)
	}

	return &Service{
		Engine:      engine,
		client:      client,
		notifier:    client,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// HandleRequest runs one matching pass and pushes the result to the
// notifier. A request that produces no winner is still published: the
// caller owns any retry or constraint-widening policy.
func (s *Service) HandleRequest(ctx context.Context, req model.ConsultationRequest, pool []model.DoctorCandidate) (model.AllocationResult, error) {
	result, err := s.Engine.Match(ctx, req, pool)
	if err != nil {
		return model.AllocationResult{}, err
	}
	if err := s.notifier.PublishAllocation(result); err != nil {
		s.log.Errorf("allocation publish failed: %v", err)
	}
	return result, nil
}

// Run subscribes to the request feed and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	err := s.client.SubscribeRequests(func(msg mqtt.MatchRequestMessage) {
		if _, err := s.HandleRequest(ctx, msg.Request, msg.Candidates); err != nil {
			s.log.Errorf("match failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe requests: %w", err)
	}
	<-ctx.Done()
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.client.Close()
	if s.bus != nil {
		s.bus.Close()
	}
	return nil
}
