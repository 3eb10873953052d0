package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column by column, the layout OpenGL uniforms
// expect. Element (row r, column c) lives at index c*4+r, so the
// translation of an affine transform sits in m[12], m[13] and m[14].
type Mat4 [16]float32

// Vec4 is a homogeneous coordinate.
type Vec4 [4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Perspective returns a right-handed projection onto clip space with depth
// mapped to [-1, 1]. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	depth := near - far

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// Ortho returns a parallel projection of the given view box.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	w, h, d := right-left, top-bottom, far-near

	m := Identity()
	m[0] = 2 / w
	m[5] = 2 / h
	m[10] = -2 / d
	m[12] = -(right + left) / w
	m[13] = -(top + bottom) / h
	m[14] = -(far + near) / d
	return m
}

// LookAt returns the view matrix of an eye at eye facing center.
func LookAt(eye, center, up Vec3) Mat4 {
	forward := center.Sub(eye).Normalize()
	side := forward.Cross(up).Normalize()
	upward := side.Cross(forward)

	m := Identity()
	for row, axis := range [3]Vec3{side, upward, forward.Scale(-1)} {
		m[row], m[4+row], m[8+row] = axis.X, axis.Y, axis.Z
		m[12+row] = -axis.Dot(eye)
	}
	return m
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scale returns a scale along each axis.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotateX returns a rotation of angle radians about the X axis.
func RotateX(angle float32) Mat4 { return rotation(0, angle) }

// RotateY returns a rotation of angle radians about the Y axis.
func RotateY(angle float32) Mat4 { return rotation(1, angle) }

// RotateZ returns a rotation of angle radians about the Z axis.
func RotateZ(angle float32) Mat4 { return rotation(2, angle) }

// rotation turns the plane of the two axes following axis in X, Y, Z order,
// counterclockwise when looking down axis toward the origin.
func rotation(axis int, angle float32) Mat4 {
	i, j := (axis+1)%3, (axis+2)%3
	s, c := math32.Sin(angle), math32.Cos(angle)

	m := Identity()
	m[i*4+i], m[j*4+j] = c, c
	m[i*4+j], m[j*4+i] = s, -s
	return m
}

// Mul returns m * other, which applies other first when transforming.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+r] * other[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for r := range 4 {
		out[r] = m[r]*v[0] + m[4+r]*v[1] + m[8+r]*v[2] + m[12+r]*v[3]
	}
	return out
}

// TransformVec3 transforms a point, dividing by w for projective matrices.
func (m Mat4) TransformVec3(p Vec3) Vec3 {
	h := m.MulVec4(Vec4{p.X, p.Y, p.Z, 1})
	if w := h[3]; w != 0 && w != 1 {
		return Vec3{h[0] / w, h[1] / w, h[2] / w}
	}
	return Vec3{h[0], h[1], h[2]}
}

// TransformDirection transforms a direction, ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	h := m.MulVec4(Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{h[0], h[1], h[2]}
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for c := range 4 {
		for r := range 4 {
			t[r*4+c] = m[c*4+r]
		}
	}
	return t
}

// NormalMatrix returns the inverse transpose of m's linear part. It keeps
// normals perpendicular to surfaces under non-uniform scale.
func (m Mat4) NormalMatrix() Mat4 {
	linear := m
	linear[12], linear[13], linear[14] = 0, 0, 0
	return linear.Inverse().Transpose()
}

// Inverse returns the inverse of m by Gauss-Jordan elimination with partial
// pivoting. A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	a, inv := m, Identity()
	for col := range 4 {
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math32.Abs(a[col*4+r]) > math32.Abs(a[col*4+pivot]) {
				pivot = r
			}
		}
		if a[col*4+pivot] == 0 {
			return Identity()
		}
		a.swapRows(col, pivot)
		inv.swapRows(col, pivot)

		k := 1 / a[col*4+col]
		a.scaleRow(col, k)
		inv.scaleRow(col, k)

		for r := range 4 {
			if f := a[col*4+r]; r != col && f != 0 {
				a.subRow(r, col, f)
				inv.subRow(r, col, f)
			}
		}
	}
	return inv
}

func (m *Mat4) swapRows(i, j int) {
	for c := range 4 {
		m[c*4+i], m[c*4+j] = m[c*4+j], m[c*4+i]
	}
}

func (m *Mat4) scaleRow(i int, k float32) {
	for c := range 4 {
		m[c*4+i] *= k
	}
}

// subRow subtracts f times row src from row dst.
func (m *Mat4) subRow(dst, src int, f float32) {
	for c := range 4 {
		m[c*4+dst] -= f * m[c*4+src]
	}
}

// Ptr returns a pointer to the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
