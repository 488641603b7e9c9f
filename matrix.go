// Package spatialmath implements rigid-body coordinate transforms between a
// local and a world reference frame: a 3x3 matrix type with rotation-matrix
// constructors, and an affine transform pairing a rotation with a
// translation offset.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/framekit/spatialmath/utils"
)

// Matrix3 is a 3x3 matrix over float64, stored in row major order so that
// mat[3*row+col] is the element in the given row and column. Operations
// never mutate their receiver; each returns a newly allocated matrix, so a
// matrix may be shared freely across goroutines once constructed.
//
// The general element-wise operations place no constraint on the contents.
// The rotation factories (NewRotationFromAxisAngle, NewRotationFromAngles,
// NewRotationFromPose, NewRotationBetween) always produce an orthogonal
// matrix with determinant +1.
type Matrix3 struct {
	mat [9]float64
}

// NewIdentityMatrix3 returns the multiplicative identity matrix.
func NewIdentityMatrix3() *Matrix3 {
	return &Matrix3{mat: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

// NewMatrix3 constructs a matrix from a slice of 9 row-major elements. The
// slice is copied, not retained.
func NewMatrix3(elements []float64) (*Matrix3, error) {
	if len(elements) != 9 {
		return nil, errors.Errorf("expected 9 elements, got %d", len(elements))
	}
	m := &Matrix3{}
	copy(m.mat[:], elements)
	return m, nil
}

// NewMatrix3FromRows builds a matrix whose rows are the given vectors, top
// to bottom.
func NewMatrix3FromRows(r0, r1, r2 r3.Vector) *Matrix3 {
	return &Matrix3{mat: [9]float64{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}}
}

// NewMatrix3FromColumns builds a matrix whose columns are the given vectors,
// left to right.
func NewMatrix3FromColumns(c0, c1, c2 r3.Vector) *Matrix3 {
	return &Matrix3{mat: [9]float64{
		c0.X, c1.X, c2.X,
		c0.Y, c1.Y, c2.Y,
		c0.Z, c1.Z, c2.Z,
	}}
}

// NewMatrix3FromDense converts a 3x3 gonum dense matrix. Callers doing SVD
// or least-squares work in gonum can hand their result over with this.
func NewMatrix3FromDense(d *mat.Dense) (*Matrix3, error) {
	rows, cols := d.Dims()
	if rows != 3 || cols != 3 {
		return nil, errors.Errorf("expected a 3x3 matrix, got %dx%d", rows, cols)
	}
	m := &Matrix3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.mat[3*i+j] = d.At(i, j)
		}
	}
	return m, nil
}

// NewRotationFromAxisAngle constructs the matrix rotating a vector by the
// given amount of degrees about the given axis, using Rodrigues' rotation
// formula. The axis need not be unit length; it is normalized internally.
// A zero angle or a zero-length axis yields the identity.
func NewRotationFromAxisAngle(axis r3.Vector, degrees float64) *Matrix3 {
	if degrees == 0 || axis.Norm() == 0 {
		return NewIdentityMatrix3()
	}

	angle := utils.DegToRad(degrees)
	u := axis.Normalize()
	x, y, z := u.X, u.Y, u.Z
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	factor := 1 - cosA
	return &Matrix3{mat: [9]float64{
		x*x + (1-x*x)*cosA, x*y*factor - z*sinA, x*z*factor + y*sinA,
		x*y*factor + z*sinA, y*y + (1-y*y)*cosA, y*z*factor - x*sinA,
		x*z*factor - y*sinA, y*z*factor + x*sinA, z*z + (1-z*z)*cosA,
	}}
}

// NewRotationFromAngles constructs a rotation matrix from yaw, pitch and
// roll in degrees, using first-person camera body axes: +X points left,
// +Y up, +Z forward. Yaw is applied first, about the Y axis; then pitch,
// about the X axis; then roll, about the Z axis. All-zero angles yield the
// identity.
func NewRotationFromAngles(yaw, pitch, roll float64) *Matrix3 {
	if yaw == 0 && pitch == 0 && roll == 0 {
		return NewIdentityMatrix3()
	}

	cy := math.Cos(utils.DegToRad(yaw))
	sy := math.Sin(utils.DegToRad(yaw))
	cp := math.Cos(utils.DegToRad(pitch))
	sp := math.Sin(utils.DegToRad(pitch))
	cr := math.Cos(utils.DegToRad(roll))
	sr := math.Sin(utils.DegToRad(roll))
	return &Matrix3{mat: [9]float64{
		cr*cy - sp*sr*sy, -cy*sr - cr*sp*sy, -cp * sy,
		cp * sr, cp * cr, -sp,
		cy*sp*sr + cr*sy, cr*cy*sp - sr*sy, cp * cy,
	}}
}

// NewRotationFromPose constructs the rotation matrix for a pose's heading.
// A pose has no intrinsic roll.
func NewRotationFromPose(p *Pose) *Matrix3 {
	return NewRotationFromAngles(p.Yaw, p.Pitch, 0)
}

// NewRotationBetween constructs the rotation taking unit vector a onto unit
// vector b, rotating about their cross product. Both degenerate cases are
// defined: parallel inputs yield the identity and anti-parallel inputs
// yield a 180 degree rotation about an axis perpendicular to a. The result
// is never NaN.
func NewRotationBetween(a, b r3.Vector) *Matrix3 {
	v := a.Cross(b)
	c := a.Dot(b)

	if c <= antiparallelDot {
		return newHalfTurn(a)
	}
	if v.Norm() == 0 {
		return NewIdentityMatrix3()
	}

	// R = I + [v]x + [v]x^2 / (1+c), well conditioned away from c == -1
	k := 1 / (1 + c)
	return &Matrix3{mat: [9]float64{
		1 + k*(-v.Z*v.Z-v.Y*v.Y), -v.Z + k*v.X*v.Y, v.Y + k*v.X*v.Z,
		v.Z + k*v.X*v.Y, 1 + k*(-v.Z*v.Z-v.X*v.X), -v.X + k*v.Y*v.Z,
		-v.Y + k*v.X*v.Z, v.X + k*v.Y*v.Z, 1 + k*(-v.Y*v.Y-v.X*v.X),
	}}
}

// Dot products below this are treated as anti-parallel; the generic formula
// divides by 1+dot and degrades near the fold.
const antiparallelDot = -1 + 1e-12

// newHalfTurn returns a 180 degree rotation about an arbitrary axis
// perpendicular to u. R = 2*n*n^T - I for a unit axis n.
func newHalfTurn(u r3.Vector) *Matrix3 {
	perp := u.Cross(r3.Vector{X: 1})
	if perp.Norm() < 1e-6 {
		perp = u.Cross(r3.Vector{Y: 1})
	}
	n := perp.Normalize()
	return &Matrix3{mat: [9]float64{
		2*n.X*n.X - 1, 2 * n.X * n.Y, 2 * n.X * n.Z,
		2 * n.X * n.Y, 2*n.Y*n.Y - 1, 2 * n.Y * n.Z,
		2 * n.X * n.Z, 2 * n.Y * n.Z, 2*n.Z*n.Z - 1,
	}}
}

func checkIndex(row, col int) error {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return errors.Errorf("index (%d, %d) out of range for a 3x3 matrix", row, col)
	}
	return nil
}

// At returns the element at the given row and column, erroring when either
// index is outside [0, 3).
func (m *Matrix3) At(row, col int) (float64, error) {
	if err := checkIndex(row, col); err != nil {
		return 0, err
	}
	return m.mat[3*row+col], nil
}

// Set returns a copy of the matrix with the element at the given row and
// column replaced, erroring when either index is outside [0, 3).
func (m *Matrix3) Set(row, col int, value float64) (*Matrix3, error) {
	if err := checkIndex(row, col); err != nil {
		return nil, err
	}
	out := *m
	out.mat[3*row+col] = value
	return &out, nil
}

// Row returns the ith row as a vector.
func (m *Matrix3) Row(i int) r3.Vector {
	return r3.Vector{X: m.mat[3*i], Y: m.mat[3*i+1], Z: m.mat[3*i+2]}
}

// Col returns the ith column as a vector.
func (m *Matrix3) Col(i int) r3.Vector {
	return r3.Vector{X: m.mat[i], Y: m.mat[3+i], Z: m.mat[6+i]}
}

// Transpose returns the matrix with rows and columns swapped.
func (m *Matrix3) Transpose() *Matrix3 {
	out := &Matrix3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.mat[3*i+j] = m.mat[3*j+i]
		}
	}
	return out
}

// Det returns the determinant by direct cofactor expansion.
func (m *Matrix3) Det() float64 {
	return m.mat[0]*m.mat[4]*m.mat[8] + m.mat[1]*m.mat[5]*m.mat[6] + m.mat[2]*m.mat[3]*m.mat[7] -
		m.mat[6]*m.mat[4]*m.mat[2] - m.mat[7]*m.mat[5]*m.mat[0] - m.mat[8]*m.mat[3]*m.mat[1]
}

// Inverse returns the matrix inverse as the adjugate divided by the
// determinant, erroring on a singular matrix. This works for any regular
// matrix; for a matrix known to be orthogonal, Transpose or
// MulVecTranspose are the cheap equivalents.
func (m *Matrix3) Inverse() (*Matrix3, error) {
	d := m.Det()
	if d == 0 {
		return nil, errors.New("matrix is singular: determinant is zero")
	}
	invD := 1 / d
	return &Matrix3{mat: [9]float64{
		+(m.mat[4]*m.mat[8] - m.mat[7]*m.mat[5]) * invD,
		-(m.mat[1]*m.mat[8] - m.mat[2]*m.mat[7]) * invD,
		+(m.mat[1]*m.mat[5] - m.mat[2]*m.mat[4]) * invD,
		-(m.mat[3]*m.mat[8] - m.mat[5]*m.mat[6]) * invD,
		+(m.mat[0]*m.mat[8] - m.mat[2]*m.mat[6]) * invD,
		-(m.mat[0]*m.mat[5] - m.mat[3]*m.mat[2]) * invD,
		+(m.mat[3]*m.mat[7] - m.mat[6]*m.mat[4]) * invD,
		-(m.mat[0]*m.mat[7] - m.mat[6]*m.mat[1]) * invD,
		+(m.mat[0]*m.mat[4] - m.mat[3]*m.mat[1]) * invD,
	}}, nil
}

// Mul returns the matrix product m*rhs. Interpreted as transforms, the
// product applies rhs first: (m.Mul(rhs)).MulVec(v) == m.MulVec(rhs.MulVec(v)).
func (m *Matrix3) Mul(rhs *Matrix3) *Matrix3 {
	out := &Matrix3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var acc float64
			for r := 0; r < 3; r++ {
				acc += m.mat[3*i+r] * rhs.mat[3*r+j]
			}
			out.mat[3*i+j] = acc
		}
	}
	return out
}

// Add returns the element-wise sum m+rhs.
func (m *Matrix3) Add(rhs *Matrix3) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] + rhs.mat[n]
	}
	return out
}

// Sub returns the element-wise difference m-rhs.
func (m *Matrix3) Sub(rhs *Matrix3) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] - rhs.mat[n]
	}
	return out
}

// MulScalar returns the matrix with each element multiplied by the scalar.
func (m *Matrix3) MulScalar(scalar float64) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] * scalar
	}
	return out
}

// DivScalar returns the matrix with each element divided by the scalar.
func (m *Matrix3) DivScalar(scalar float64) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] / scalar
	}
	return out
}

// AddScalar returns the matrix with the scalar added to each element.
func (m *Matrix3) AddScalar(scalar float64) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] + scalar
	}
	return out
}

// SubScalar returns the matrix with the scalar subtracted from each element.
func (m *Matrix3) SubScalar(scalar float64) *Matrix3 {
	out := &Matrix3{}
	for n := 0; n < 9; n++ {
		out.mat[n] = m.mat[n] - scalar
	}
	return out
}

// MulVec returns M*v.
func (m *Matrix3) MulVec(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.mat[0]*v.X + m.mat[1]*v.Y + m.mat[2]*v.Z,
		Y: m.mat[3]*v.X + m.mat[4]*v.Y + m.mat[5]*v.Z,
		Z: m.mat[6]*v.X + m.mat[7]*v.Y + m.mat[8]*v.Z,
	}
}

// MulVecTranspose returns M^T*v without materializing the transpose. For an
// orthogonal M this is the inverse rotation applied to v.
func (m *Matrix3) MulVecTranspose(v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.mat[0]*v.X + m.mat[3]*v.Y + m.mat[6]*v.Z,
		Y: m.mat[1]*v.X + m.mat[4]*v.Y + m.mat[7]*v.Z,
		Z: m.mat[2]*v.X + m.mat[5]*v.Y + m.mat[8]*v.Z,
	}
}

// Dense converts the matrix to a gonum dense matrix.
func (m *Matrix3) Dense() *mat.Dense {
	data := make([]float64, 9)
	copy(data, m.mat[:])
	return mat.NewDense(3, 3, data)
}

// AlmostEqual returns whether every element of the two matrices is within
// epsilon of its counterpart.
func (m *Matrix3) AlmostEqual(other *Matrix3, epsilon float64) bool {
	for n := 0; n < 9; n++ {
		if !utils.Float64AlmostEqual(m.mat[n], other.mat[n], epsilon) {
			return false
		}
	}
	return true
}

func (m *Matrix3) String() string {
	return fmt.Sprintf("Matrix3(\n\t%v, %v, %v,\n\t%v, %v, %v,\n\t%v, %v, %v)",
		m.mat[0], m.mat[1], m.mat[2],
		m.mat[3], m.mat[4], m.mat[5],
		m.mat[6], m.mat[7], m.mat[8])
}
