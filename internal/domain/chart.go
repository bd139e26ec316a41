package domain

import "time"

// Point is a drawable pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dims describes the drawing surface handed to the projection layer.
type Dims struct {
	Width   float64
	Height  float64
	Padding float64
}

// AnimationState captures one in-flight transition between two rendered
// point sets. A newer target supersedes it; it is finished once elapsed
// time reaches Duration.
type AnimationState struct {
	From     []Point
	To       []Point
	Start    time.Time
	Duration time.Duration
}
