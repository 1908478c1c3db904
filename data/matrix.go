// Package data holds the sparse example containers consumed by the scoring
// and gradient engine: one Node per nonzero feature, one SparseRow per
// example, and a Matrix batching rows with their labels.
package data

import "fmt"

// Node is a single nonzero entry of a sparse example. Field is meaningful
// only for field-aware (ffm) scoring and is ignored by the other kernels.
type Node struct {
	Feature uint32
	Value   float64
	Field   uint32
}

// SparseRow is the ordered list of nonzero entries of one example.
type SparseRow []Node

// Matrix is one batch of examples: an ordered sequence of sparse rows plus
// a parallel sequence of labels. The engine only reads it; rows are
// immutable once appended. Row count and label count are always equal.
type Matrix struct {
	rows   []SparseRow
	labels []float64
}

// NewMatrix creates an empty matrix with capacity for n rows.
func NewMatrix(n int) *Matrix {
	return &Matrix{
		rows:   make([]SparseRow, 0, n),
		labels: make([]float64, 0, n),
	}
}

// AddRow appends one example and its label.
func (m *Matrix) AddRow(row SparseRow, label float64) {
	m.rows = append(m.rows, row)
	m.labels = append(m.labels, label)
}

// Len returns the number of examples in the batch.
func (m *Matrix) Len() int {
	return len(m.rows)
}

// Row returns the i-th example.
func (m *Matrix) Row(i int) SparseRow {
	return m.rows[i]
}

// Label returns the label of the i-th example.
func (m *Matrix) Label(i int) float64 {
	return m.labels[i]
}

// Labels returns the full label vector, aligned with row order.
func (m *Matrix) Labels() []float64 {
	return m.labels
}

// MaxFeature returns the largest feature id present in the batch, so a
// driver can size a model as MaxFeature()+1. Returns 0 for an empty batch.
func (m *Matrix) MaxFeature() uint32 {
	var max uint32
	for _, row := range m.rows {
		for _, n := range row {
			if n.Feature > max {
				max = n.Feature
			}
		}
	}
	return max
}

// MaxField returns the largest field id present in the batch.
func (m *Matrix) MaxField() uint32 {
	var max uint32
	for _, row := range m.rows {
		for _, n := range row {
			if n.Field > max {
				max = n.Field
			}
		}
	}
	return max
}

// BinarizeLabels rewrites every label to +1 when positive and -1 otherwise.
// The cross-entropy and hinge losses are defined over {-1, +1} labels while
// classification files commonly carry {0, 1}; the training driver calls
// this once before the first epoch. Regression data must not be binarized.
func (m *Matrix) BinarizeLabels() {
	for i, y := range m.labels {
		if y > 0 {
			m.labels[i] = 1
		} else {
			m.labels[i] = -1
		}
	}
}

// Check panics unless the row/label invariant holds. The engine calls it on
// every entry; a violation is a programming error in the driver, not a
// runtime condition.
func (m *Matrix) Check() {
	if len(m.rows) != len(m.labels) {
		panic(fmt.Sprintf("data: matrix has %d rows but %d labels", len(m.rows), len(m.labels)))
	}
}
