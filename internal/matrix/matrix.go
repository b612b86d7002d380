// Package matrix provides the dense float64 matrix the network layer is
// built on. It is deliberately small: the network only needs construction,
// multiply, transpose, element-wise map and row augmentation.
package matrix

import (
	"fmt"
	"math/rand"
)

// Matrix is a rectangular container of float64 values, row-major.
// Exported fields so checkpoints can serialize weight layers directly.
type Matrix struct {
	Rows   int         `json:"rows"`
	Cols   int         `json:"cols"`
	Values [][]float64 `json:"values"`
}

// New returns a zero matrix of the given shape.
func New(rows, cols int) Matrix {
	values := make([][]float64, rows)
	for i := range values {
		values[i] = make([]float64, cols)
	}
	return Matrix{Rows: rows, Cols: cols, Values: values}
}

// FromRows builds a matrix from row slices. All rows must share a length.
func FromRows(rows [][]float64) Matrix {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	for i, row := range rows {
		if len(row) != cols {
			panic(fmt.Sprintf("matrix: ragged row %d: len=%d want=%d", i, len(row), cols))
		}
	}
	return Matrix{Rows: len(rows), Cols: cols, Values: rows}
}

// Column builds a single-column matrix from a vector.
func Column(values []float64) Matrix {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return Matrix{Rows: len(values), Cols: 1, Values: rows}
}

// Random returns a matrix with independent uniform values in [-1, 1).
func Random(rows, cols int, rng *rand.Rand) Matrix {
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Values[i][j] = rng.Float64()*2 - 1
		}
	}
	return m
}

// At returns the element at (row, col).
func (m Matrix) At(row, col int) float64 {
	return m.Values[row][col]
}

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v float64) {
	m.Values[row][col] = v
}

// Clone deep-copies the matrix.
func (m Matrix) Clone() Matrix {
	out := New(m.Rows, m.Cols)
	for i := range m.Values {
		copy(out.Values[i], m.Values[i])
	}
	return out
}

// Add returns the element-wise sum. Shapes must match.
func (m Matrix) Add(other Matrix) Matrix {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		panic(fmt.Sprintf("matrix: add shape mismatch: %dx%d vs %dx%d", m.Rows, m.Cols, other.Rows, other.Cols))
	}
	out := m.Clone()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Values[i][j] += other.Values[i][j]
		}
	}
	return out
}

// AddScalar returns the matrix with v added to every element.
func (m Matrix) AddScalar(v float64) Matrix {
	out := m.Clone()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Values[i][j] += v
		}
	}
	return out
}

// Scale returns the matrix with every element multiplied by v.
func (m Matrix) Scale(v float64) Matrix {
	out := m.Clone()
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Values[i][j] *= v
		}
	}
	return out
}

// Mul returns the matrix product m × other. Inner dimensions must agree.
func (m Matrix) Mul(other Matrix) Matrix {
	if m.Cols != other.Rows {
		panic(fmt.Sprintf("matrix: mul shape mismatch: %dx%d vs %dx%d", m.Rows, m.Cols, other.Rows, other.Cols))
	}
	out := New(m.Rows, other.Cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < other.Cols; j++ {
			sum := 0.0
			for k := 0; k < m.Cols; k++ {
				sum += m.Values[i][k] * other.Values[k][j]
			}
			out.Values[i][j] = sum
		}
	}
	return out
}

// Transpose returns the transposed matrix.
func (m Matrix) Transpose() Matrix {
	out := New(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Values[j][i] = m.Values[i][j]
		}
	}
	return out
}

// Map replaces every element in place with fn(element).
func (m *Matrix) Map(fn func(float64) float64) {
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			m.Values[i][j] = fn(m.Values[i][j])
		}
	}
}

// MapIndexed replaces every element in place with fn(row, col, element).
func (m *Matrix) MapIndexed(fn func(row, col int, v float64) float64) {
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			m.Values[i][j] = fn(i, j, m.Values[i][j])
		}
	}
}

// AppendRow grows the matrix by one row. The row length must match Cols.
func (m *Matrix) AppendRow(row []float64) {
	if len(row) != m.Cols {
		panic(fmt.Sprintf("matrix: append row length mismatch: %d want %d", len(row), m.Cols))
	}
	m.Values = append(m.Values, row)
	m.Rows++
}

// RowVector returns row i as a copied slice.
func (m Matrix) RowVector(i int) []float64 {
	out := make([]float64, m.Cols)
	copy(out, m.Values[i])
	return out
}

// ColumnVector returns column j as a copied slice.
func (m Matrix) ColumnVector(j int) []float64 {
	out := make([]float64, m.Rows)
	for i := 0; i < m.Rows; i++ {
		out[i] = m.Values[i][j]
	}
	return out
}

// Equal reports whether both matrices have the same shape and values.
func (m Matrix) Equal(other Matrix) bool {
	if m.Rows != other.Rows || m.Cols != other.Cols {
		return false
	}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if m.Values[i][j] != other.Values[i][j] {
				return false
			}
		}
	}
	return true
}
