package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/framekit/spatialmath/utils"
)

// orthoEpsilon bounds how far R^T*R may drift from the identity before a
// caller-supplied matrix is rejected as a rotation.
const orthoEpsilon = 1e-9

// AffineTransform is a rigid transform between a local and a world
// reference frame: world = rot*local + offset. Every factory guarantees an
// orthogonal linear part with determinant +1, which is what makes Inverse
// and ToLocalAxis transpose-based and infallible. A transform owns its
// fields and is immutable after construction, so instances may be shared
// freely across goroutines.
//
// General, possibly non-orthogonal linear maps are the domain of Matrix3,
// whose Inverse is the adjugate form with a singularity error.
type AffineTransform struct {
	rot    *Matrix3
	offset r3.Vector
}

// NewIdentityTransform returns the transform that maps every point and
// axis to itself.
func NewIdentityTransform() *AffineTransform {
	return &AffineTransform{rot: NewIdentityMatrix3()}
}

// NewTransformFromAxisAngle constructs the transform that rotates by the
// given amount of degrees about the given axis and then shifts by offset.
func NewTransformFromAxisAngle(offset, axis r3.Vector, degrees float64) *AffineTransform {
	return &AffineTransform{rot: NewRotationFromAxisAngle(axis, degrees), offset: offset}
}

// NewTransformFromAngles constructs the transform that rotates by yaw,
// pitch and roll in degrees (see NewRotationFromAngles for the axis
// convention) and then shifts by offset.
func NewTransformFromAngles(offset r3.Vector, yaw, pitch, roll float64) *AffineTransform {
	return &AffineTransform{rot: NewRotationFromAngles(yaw, pitch, roll), offset: offset}
}

// NewTransformFromPose constructs the transform whose local frame is
// anchored at the pose: the linear part from the pose's heading, the
// translation from its position.
func NewTransformFromPose(p *Pose) *AffineTransform {
	return &AffineTransform{rot: NewRotationFromPose(p), offset: p.Position}
}

// NewTransformFromMatrix constructs a transform from a caller-supplied
// linear part and offset. The matrix is copied and must be a rotation;
// anything whose transpose product with itself strays from the identity,
// or whose determinant is not +1, is rejected.
func NewTransformFromMatrix(m *Matrix3, offset r3.Vector) (*AffineTransform, error) {
	if !m.Transpose().Mul(m).AlmostEqual(NewIdentityMatrix3(), orthoEpsilon) {
		return nil, errors.New("matrix is not orthogonal")
	}
	if !utils.Float64AlmostEqual(m.Det(), 1, orthoEpsilon) {
		return nil, errors.Errorf("matrix is not a proper rotation: determinant is %v", m.Det())
	}
	rot := *m
	return &AffineTransform{rot: &rot, offset: offset}, nil
}

// Rotation returns a copy of the transform's linear part.
func (t *AffineTransform) Rotation() *Matrix3 {
	rot := *t.rot
	return &rot
}

// Offset returns the transform's translation part.
func (t *AffineTransform) Offset() r3.Vector {
	return t.offset
}

// ToWorldAxis maps a direction from the local frame into the world frame.
// Directions are unaffected by translation.
func (t *AffineTransform) ToWorldAxis(axis r3.Vector) r3.Vector {
	return t.rot.MulVec(axis)
}

// ToLocalAxis maps a direction from the world frame into the local frame.
func (t *AffineTransform) ToLocalAxis(axis r3.Vector) r3.Vector {
	return t.rot.MulVecTranspose(axis)
}

// ToWorld maps a position from the local frame into the world frame.
func (t *AffineTransform) ToWorld(position r3.Vector) r3.Vector {
	return t.ToWorldAxis(position).Add(t.offset)
}

// ToLocal maps a position from the world frame into the local frame.
func (t *AffineTransform) ToLocal(position r3.Vector) r3.Vector {
	return t.ToLocalAxis(position.Sub(t.offset))
}

// Mul composes two transforms, applying rhs first:
// t.Mul(rhs).ToWorld(v) == t.ToWorld(rhs.ToWorld(v)) for every v.
// The combined offset is t's full transform applied to rhs's offset, since
// A(Bv + y) + x = (AB)v + (Ay + x).
func (t *AffineTransform) Mul(rhs *AffineTransform) *AffineTransform {
	return &AffineTransform{
		rot:    t.rot.Mul(rhs.rot),
		offset: t.ToWorld(rhs.offset),
	}
}

// Inverse returns the transform that cancels this one: the transposed
// linear part paired with the negated, back-rotated offset.
func (t *AffineTransform) Inverse() *AffineTransform {
	inv := t.rot.Transpose()
	return &AffineTransform{rot: inv, offset: inv.MulVec(t.offset).Mul(-1)}
}

// AlmostEqual returns whether the two transforms agree element-wise within
// epsilon on both the linear and the translation part.
func (t *AffineTransform) AlmostEqual(other *AffineTransform, epsilon float64) bool {
	return t.rot.AlmostEqual(other.rot, epsilon) &&
		R3VectorAlmostEqual(t.offset, other.offset, epsilon)
}

func (t *AffineTransform) String() string {
	return fmt.Sprintf("AffineTransform(rot=%v, offset=%v)", t.rot, t.offset)
}
