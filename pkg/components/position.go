package components

// PositionComponent 实体在视口中的位置（像素，左上角为原点）
type PositionComponent struct {
	X float64
	Y float64
}
