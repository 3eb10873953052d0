package math

// Euler is a rotation in radians applied in X, then Y, then Z order of the
// resulting matrix product (Rx * Ry * Rz), matching the scene graph's
// convention for node rotations.
type Euler struct {
	X, Y, Z float32
}

// Mat4 returns the rotation matrix for e.
func (e Euler) Mat4() Mat4 {
	m := Identity()
	if e.X != 0 {
		m = m.Mul(RotateX(e.X))
	}
	if e.Y != 0 {
		m = m.Mul(RotateY(e.Y))
	}
	if e.Z != 0 {
		m = m.Mul(RotateZ(e.Z))
	}
	return m
}

// Compose builds a local transform from position, rotation and scale,
// applied to points as scale first, then rotation, then translation.
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	return Translate(position.X, position.Y, position.Z).Mul(rotation.Mat4()).Mul(Scale(scale.X, scale.Y, scale.Z))
}
