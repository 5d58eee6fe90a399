package store

import (
	"context"
	"fmt"
	"strings"

	"glossgraph/internal/domain"
	"glossgraph/internal/logger"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// DanglingPolicy decides what happens to edges with unresolved endpoints
type DanglingPolicy string

const (
	// DanglingFail rejects the whole load
	DanglingFail DanglingPolicy = "fail"
	// DanglingDrop logs and skips the edge
	DanglingDrop DanglingPolicy = "drop"
)

// ParseDanglingPolicy maps a config value to a policy, defaulting to fail
func ParseDanglingPolicy(s string) (DanglingPolicy, error) {
	switch DanglingPolicy(strings.ToLower(s)) {
	case "", DanglingFail:
		return DanglingFail, nil
	case DanglingDrop:
		return DanglingDrop, nil
	default:
		return "", fmt.Errorf("unknown dangling edge policy %q", s)
	}
}

// DroppedEdge records an edge skipped under DanglingDrop
type DroppedEdge struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Missing string `json:"missing"`
}

// Resolved is a normalized graph with edges bound to node pointers
type Resolved struct {
	Nodes   []*domain.Node
	Edges   []*domain.Edge
	Dropped []DroppedEdge
}

// Resolve normalizes a payload: ids are already strings, duplicate and empty
// ids are rejected, and every edge endpoint is bound to its node or handled
// per policy.
func Resolve(payload *domain.GraphPayload, policy DanglingPolicy) (*Resolved, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	res := &Resolved{
		Nodes: make([]*domain.Node, 0, len(payload.Nodes)),
		Edges: make([]*domain.Edge, 0, len(payload.Edges)),
	}
	byID := make(map[string]*domain.Node, len(payload.Nodes))

	for i, rec := range payload.Nodes {
		id := rec.ID.String()
		if id == "" {
			return nil, fmt.Errorf("%w: node at index %d", ErrEmptyID, i)
		}
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, id)
		}
		n := domain.NewNode(id, rec.Label, rec.Definition)
		n.Index = i
		byID[id] = n
		res.Nodes = append(res.Nodes, n)
	}

	for i, rec := range payload.Edges {
		src, srcOK := byID[rec.Source.String()]
		dst, dstOK := byID[rec.Target.String()]
		if srcOK && dstOK {
			res.Edges = append(res.Edges, domain.NewEdge(src, dst))
			continue
		}

		missing := rec.Source.String()
		if srcOK {
			missing = rec.Target.String()
		}
		if policy != DanglingDrop {
			return nil, fmt.Errorf("%w: edge %d (%s -> %s) missing %q",
				ErrDanglingEdge, i, rec.Source, rec.Target, missing)
		}
		res.Dropped = append(res.Dropped, DroppedEdge{
			Source:  rec.Source.String(),
			Target:  rec.Target.String(),
			Missing: missing,
		})
	}

	return res, nil
}

// Store holds the normalized graph after a load
type Store struct {
	source Source
	policy DanglingPolicy
	logger *zap.Logger

	nodes       []*domain.Node
	edges       []*domain.Edge
	byID        map[string]*domain.Node
	adjacent    map[string]map[string]struct{}
	dropped     []DroppedEdge
	fingerprint uint64
	loaded      bool
}

// New creates an empty store reading from source
func New(source Source, policy DanglingPolicy, log *zap.Logger) *Store {
	return &Store{
		source: source,
		policy: policy,
		logger: logger.OrNop(log),
	}
}

// Load fetches, normalizes and installs the graph. On error the previously
// loaded graph, if any, is kept.
func (s *Store) Load(ctx context.Context) error {
	res, err := s.Prepare(ctx)
	if err != nil {
		return err
	}
	s.Install(res)
	return nil
}

// Prepare fetches and normalizes the graph without touching the store, so
// the fetch can run off the goroutine that owns it.
func (s *Store) Prepare(ctx context.Context) (*Resolved, error) {
	payload, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Error("Failed to load graph",
			zap.String("source", s.source.Describe()),
			zap.Error(err))
		return nil, err
	}

	res, err := Resolve(payload, s.policy)
	if err != nil {
		s.logger.Error("Failed to resolve graph",
			zap.String("source", s.source.Describe()),
			zap.Error(err))
		return nil, err
	}
	return res, nil
}

// Install replaces the loaded graph with res
func (s *Store) Install(res *Resolved) {
	for _, d := range res.Dropped {
		s.logger.Warn("Dropped edge with unknown endpoint",
			zap.String("source", d.Source),
			zap.String("target", d.Target),
			zap.String("missing", d.Missing))
	}

	s.nodes = res.Nodes
	s.edges = res.Edges
	s.dropped = res.Dropped
	s.byID = make(map[string]*domain.Node, len(res.Nodes))
	s.adjacent = make(map[string]map[string]struct{}, len(res.Nodes))

	for _, n := range res.Nodes {
		s.byID[n.ID] = n
	}
	for _, e := range res.Edges {
		for _, end := range [...]*domain.Node{e.Source, e.Target} {
			s.link(end.ID, e.Other(end.ID).ID)
		}
	}

	s.fingerprint = res.Fingerprint()
	s.loaded = true

	s.logger.Info("Loaded graph",
		zap.String("source", s.source.Describe()),
		zap.Int("nodes", len(s.nodes)),
		zap.Int("edges", len(s.edges)),
		zap.Int("dropped", len(s.dropped)))
}

func (s *Store) link(from, to string) {
	set, ok := s.adjacent[from]
	if !ok {
		set = make(map[string]struct{})
		s.adjacent[from] = set
	}
	set[to] = struct{}{}
}

// Fingerprint hashes the graph content so reloads of unchanged data can be
// detected. Positions are not part of it.
func (res *Resolved) Fingerprint() uint64 {
	d := xxhash.New()
	for _, n := range res.Nodes {
		d.WriteString(n.ID)
		d.WriteString("\x00")
		d.WriteString(n.Label)
		d.WriteString("\x00")
		d.WriteString(n.Definition)
		d.WriteString("\x01")
	}
	for _, e := range res.Edges {
		d.WriteString(e.Source.ID)
		d.WriteString("\x00")
		d.WriteString(e.Target.ID)
		d.WriteString("\x02")
	}
	return d.Sum64()
}

// Loaded reports whether a load has succeeded
func (s *Store) Loaded() bool {
	return s.loaded
}

// Nodes returns the nodes in load order
func (s *Store) Nodes() []*domain.Node {
	return s.nodes
}

// Edges returns the resolved edges in load order
func (s *Store) Edges() []*domain.Edge {
	return s.edges
}

// Dropped returns edges skipped by the last load
func (s *Store) Dropped() []DroppedEdge {
	return s.dropped
}

// Node looks up a node by id
func (s *Store) Node(id string) (*domain.Node, bool) {
	n, ok := s.byID[id]
	return n, ok
}

// Neighbors returns the nodes sharing an edge with id, in either direction,
// without duplicates and in load order.
func (s *Store) Neighbors(id string) []*domain.Node {
	set := s.adjacent[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]*domain.Node, 0, len(set))
	for _, n := range s.nodes {
		if _, ok := set[n.ID]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Counts returns node and edge counts
func (s *Store) Counts() (nodes, edges int) {
	return len(s.nodes), len(s.edges)
}

// Fingerprint identifies the loaded content
func (s *Store) Fingerprint() uint64 {
	return s.fingerprint
}

// Source returns the configured source
func (s *Store) Source() Source {
	return s.source
}

// Snapshot returns the serializable graph
func (s *Store) Snapshot() (*domain.Graph, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return domain.DeriveGraph(s.nodes, s.edges), nil
}
