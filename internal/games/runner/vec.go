package runner

// Vec3 is a position or displacement in world space.
// X is lateral (lanes), Y is vertical (0 is the ground), Z is the travel axis.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Box is an axis-aligned box in world space.
type Box struct {
	Min, Max Vec3
}

// BoxAt builds a box standing on base: centered on X and Z, rising from base.Y.
func BoxAt(base Vec3, width, height, length float64) Box {
	return Box{
		Min: Vec3{X: base.X - width/2, Y: base.Y, Z: base.Z - length/2},
		Max: Vec3{X: base.X + width/2, Y: base.Y + height, Z: base.Z + length/2},
	}
}

// Intersects reports whether two boxes overlap. Touching faces do not count.
func (b Box) Intersects(o Box) bool {
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y &&
		b.Min.Z < o.Max.Z && o.Min.Z < b.Max.Z
}
