package gui

// projection maps world meters to window pixels with a simple pinhole
// camera sitting behind the player, looking down the road.
type projection struct {
	width, height float64 // logical window size
	horizon       float64 // y of the vanishing line
	focal         float64 // meters from the camera where things appear at half size
	camBack       float64 // camera distance behind the player
	unit          float64 // pixels per meter at the camera plane
}

func newProjection(width, height int) projection {
	w, h := float64(width), float64(height)
	return projection{
		width:   w,
		height:  h,
		horizon: h * 0.28,
		focal:   6,
		camBack: 3,
		unit:    w / 6,
	}
}

// depth converts a world z into distance from the camera.
func (p projection) depth(z, playerZ float64) float64 {
	return z - playerZ + p.camBack
}

// scale is the perspective factor at depth d, 1 at the camera and falling
// towards 0 at the horizon.
func (p projection) scale(d float64) float64 {
	return p.focal / (p.focal + d)
}

// visible reports whether depth d is in front of the camera.
func (p projection) visible(d float64) bool {
	return d > 0.1
}

// point projects a world point at depth d. y is the height above the ground.
func (p projection) point(x, y, d float64) (sx, sy float64) {
	s := p.scale(d)
	ground := p.horizon + (p.height-p.horizon)*s
	return p.width/2 + x*p.unit*s, ground - y*p.unit*s
}

// size projects a world length at depth d.
func (p projection) size(l, d float64) float64 {
	return l * p.unit * p.scale(d)
}
