package main

import (
	"math/rand"
	"time"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

// RandomFloat returns a uniform float in [min, max). Used for spawn
// placement jitter.
func RandomFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// RandomInt returns a uniform int in [min, max]. Used for guest name
// suffixes.
func RandomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// Clamp restricts a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
