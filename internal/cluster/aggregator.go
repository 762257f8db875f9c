package cluster

import (
	"sort"

	"clusterfail/internal/domain"
)

// Cluster is a group of failure records sharing one signature
type Cluster struct {
	Signature string
	Records   []domain.FailureRecord
}

// Size returns the number of records in the cluster
func (c Cluster) Size() int {
	return len(c.Records)
}

// Map groups failure records by signature. Keys keep first-seen order and
// records keep loader order within each key.
type Map struct {
	order   []string
	members map[string][]domain.FailureRecord
	total   int
}

// Len returns the number of distinct signatures
func (m *Map) Len() int {
	return len(m.order)
}

// Total returns the number of records across all clusters
func (m *Map) Total() int {
	return m.total
}

// Records returns the records sharing a signature, or nil if it is unknown
func (m *Map) Records(signature string) []domain.FailureRecord {
	records, ok := m.members[signature]
	if !ok {
		return nil
	}
	return append([]domain.FailureRecord(nil), records...)
}

// Clusters returns all clusters in first-seen order
func (m *Map) Clusters() []Cluster {
	clusters := make([]Cluster, 0, len(m.order))
	for _, sig := range m.order {
		clusters = append(clusters, Cluster{Signature: sig, Records: m.Records(sig)})
	}
	return clusters
}

// Ranked returns all clusters sorted by size, largest first. Clusters of equal
// size keep first-seen order.
func (m *Map) Ranked() []Cluster {
	clusters := m.Clusters()
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size() > clusters[j].Size()
	})
	return clusters
}

// Aggregator groups failure records into clusters
type Aggregator struct{}

// NewAggregator creates a new Aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate builds a Map from the full ordered record sequence
func (a *Aggregator) Aggregate(records []domain.FailureRecord) *Map {
	m := &Map{members: make(map[string][]domain.FailureRecord)}
	for _, r := range records {
		if _, seen := m.members[r.Signature]; !seen {
			m.order = append(m.order, r.Signature)
		}
		m.members[r.Signature] = append(m.members[r.Signature], r)
	}
	m.total = len(records)
	return m
}
