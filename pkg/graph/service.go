package graph

import (
	"time"

	"github.com/dd0wney/taxigraph/pkg/logging"
	"github.com/dd0wney/taxigraph/pkg/metrics"
	"github.com/dd0wney/taxigraph/pkg/routing"
	"github.com/dd0wney/taxigraph/pkg/schema"
	"github.com/dd0wney/taxigraph/pkg/store"
	"github.com/dd0wney/taxigraph/pkg/validation"
)

// Service bundles the store, path finder, and validation engine behind
// the mutation and query interfaces the agent loop and downstream
// consumers use. The store handle is explicit, never global, so tests
// run against isolated in-memory instances.
type Service struct {
	store   store.Store
	logger  logging.Logger
	metrics *metrics.Registry
	retries int
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metrics.Registry) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRetries overrides the bounded retry count for transient store
// failures.
func WithRetries(attempts int) Option {
	return func(s *Service) { s.retries = attempts }
}

// NewService creates a Service over the given store.
func NewService(st store.Store, opts ...Option) *Service {
	s := &Service{
		store:   st,
		logger:  logging.NopLogger{},
		retries: store.DefaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProposeNode validates and upserts a node. Validation errors surface
// immediately and are never auto-corrected: silent correction would
// desynchronize the graph from the source diagram.
func (s *Service) ProposeNode(n *schema.Node) error {
	err := store.WithRetry(s.retries, func() error {
		return s.store.UpsertNode(n)
	})
	if s.metrics != nil {
		s.metrics.RecordMutation("upsert_node", err)
		if schema.IsViolation(err) {
			s.metrics.SchemaViolationsTotal.Inc()
		}
	}
	if err != nil {
		s.logger.Warn("node rejected", logging.NodeID(n.ID), logging.Error(err))
		return err
	}
	s.logger.Debug("node upserted", logging.Airport(n.Airport), logging.NodeID(n.ID))
	return nil
}

// ProposeEdge validates and upserts a CONNECTS edge. When bidirectional,
// the reverse edge is stored too with the opposite compass direction;
// passing false records a one-way segment, which is how one-way runway
// entry points are modeled.
func (s *Service) ProposeEdge(fromID, toID string, attrs schema.EdgeAttrs, bidirectional bool) error {
	err := store.WithRetry(s.retries, func() error {
		return s.store.UpsertEdge(fromID, toID, attrs)
	})
	if err == nil && bidirectional {
		reverse := attrs
		reverse.Direction = attrs.Direction.Opposite()
		err = store.WithRetry(s.retries, func() error {
			return s.store.UpsertEdge(toID, fromID, reverse)
		})
	}

	if s.metrics != nil {
		s.metrics.RecordMutation("upsert_edge", err)
		if schema.IsViolation(err) {
			s.metrics.SchemaViolationsTotal.Inc()
		}
	}
	if err != nil {
		s.logger.Warn("edge rejected", logging.EdgeRef(fromID, toID), logging.Error(err))
		return err
	}
	s.logger.Debug("edge upserted", logging.EdgeRef(fromID, toID),
		logging.Bool("bidirectional", bidirectional))
	return nil
}

// RemoveNode deletes a node and its edges; corrections are modeled as
// delete-then-recreate.
func (s *Service) RemoveNode(id string) error {
	return store.WithRetry(s.retries, func() error {
		return s.store.DeleteNode(id)
	})
}

// RemoveEdge deletes the directed edges between two nodes.
func (s *Service) RemoveEdge(fromID, toID string) error {
	return store.WithRetry(s.retries, func() error {
		return s.store.DeleteEdge(fromID, toID)
	})
}

// FindPath returns the lowest-distance constraint-aware route.
func (s *Service) FindPath(airport, startID, endID string) (*routing.Path, error) {
	start := time.Now()
	path, err := routing.FindPath(s.store, airport, startID, endID)
	elapsed := time.Since(start)

	if s.metrics != nil {
		status := "ok"
		switch {
		case err == routing.ErrNoRoute:
			status = "no_route"
		case err != nil:
			status = "error"
		}
		s.metrics.RecordPathQuery(status, elapsed)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Debug("path found", logging.Airport(airport),
		logging.Int("hops", len(path.NodeIDs)-1),
		logging.Float64("distance", path.TotalDistance),
		logging.Latency(elapsed))
	return path, nil
}

// GetNode returns one node by id.
func (s *Service) GetNode(id string) (*schema.Node, error) {
	return s.store.GetNode(id)
}

// ListNodes returns the airport's nodes in stable order.
func (s *Service) ListNodes(airport string) ([]*schema.Node, error) {
	return s.store.ListNodes(airport)
}

// ListEdges returns the airport's edges in stable order.
func (s *Service) ListEdges(airport string) ([]*schema.Edge, error) {
	return s.store.ListEdges(airport)
}

// Stats returns node and edge counts, optionally scoped to one airport.
func (s *Service) Stats(airport string) (*store.Stats, error) {
	stats, err := s.store.Stats(airport)
	if err == nil && s.metrics != nil && airport != "" {
		s.metrics.UpdateGraphSize(airport, stats.Nodes, stats.Edges)
	}
	return stats, err
}

// ListAirports returns the distinct airports present.
func (s *Service) ListAirports() ([]string, error) {
	return s.store.ListAirports()
}

// Validate runs the structural check battery over one airport.
func (s *Service) Validate(airport string) (*validation.Report, error) {
	report, err := validation.Validate(s.store, airport)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordValidation(airport, report.Errors(), report.Warnings())
	}
	s.logger.Info("validation run", logging.Airport(airport),
		logging.Int("errors", report.Errors()),
		logging.Int("warnings", report.Warnings()))
	return report, nil
}

// Clear drops one airport's subgraph, or everything when airport is empty.
// Other airports' data is untouched by a scoped clear.
func (s *Service) Clear(airport string) error {
	err := store.WithRetry(s.retries, func() error {
		return s.store.Clear(airport)
	})
	if err == nil {
		s.logger.Info("graph cleared", logging.Airport(airport))
	}
	return err
}

// ApplyBatch forwards one construction pass to the store when it
// supports batching.
func (s *Service) ApplyBatch(muts []store.Mutation) (*store.BatchResult, error) {
	type batcher interface {
		ApplyBatch([]store.Mutation) (*store.BatchResult, error)
	}
	b, ok := s.store.(batcher)
	if !ok {
		// Fall back to sequential application.
		result := &store.BatchResult{}
		for i, m := range muts {
			var err error
			switch {
			case m.Node != nil:
				err = s.store.UpsertNode(m.Node)
			case m.Edge != nil:
				err = s.store.UpsertEdge(m.Edge.FromID, m.Edge.ToID, m.Edge.EdgeAttrs)
			}
			if err != nil {
				result.Failures = append(result.Failures, store.MutationFailure{Index: i, Err: err})
				continue
			}
			result.Applied++
		}
		return result, nil
	}
	return b.ApplyBatch(muts)
}
