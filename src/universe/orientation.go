package universe

import "github.com/go-gl/mathgl/mgl32"

//CellSpacing is the distance between two neighboring cells in renderer space
const CellSpacing = 15

//Orientation is the auto-rotation state of the cube
//the simulation never reads it, it is only forwarded to renderers
type Orientation struct {
	Rotate [3]bool    //rotation enabled per x, y, z axis
	Angles [3]float32 //current angle per axis in degrees
	size   int
}

func newOrientation(size int) Orientation {
	return Orientation{Rotate: [3]bool{true, true, true}, size: size}
}

//advance turns every enabled axis by one degree
func (o *Orientation) advance() {
	for i, on := range o.Rotate {
		if on {
			o.Angles[i] = float32(int(o.Angles[i]+1) % 360)
		}
	}
}

//Pivot returns the center of the cube in renderer space
func (o Orientation) Pivot() mgl32.Vec3 {
	c := float32(o.size+1) / 2 * CellSpacing
	return mgl32.Vec3{c, c, c}
}

//Transform returns the model matrix that rotates the cube around its pivot
func (o Orientation) Transform() mgl32.Mat4 {
	p := o.Pivot()
	rot := mgl32.HomogRotate3DX(mgl32.DegToRad(o.Angles[0])).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.Angles[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(o.Angles[2])))
	return mgl32.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(rot).
		Mul4(mgl32.Translate3D(-p.X(), -p.Y(), -p.Z()))
}

//CellPosition returns where the box of cell x, y, z is placed before rotation
//the lattice depth is the vertical axis of the scene
func (o Orientation) CellPosition(x int, y int, z int) mgl32.Vec3 {
	return mgl32.Vec3{float32(x * CellSpacing), float32(z * CellSpacing), float32(y * CellSpacing)}
}
