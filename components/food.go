package components

// Food is a depletable, time-limited resource point.
type Food struct {
	ID         uint32
	Kind       FoodKind
	Quantity   float64
	TimeToLive float64 // seconds until the source dries up
}
