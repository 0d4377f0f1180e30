package handlers

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Classifier labels a report image. The dev server simulates the hosted
// model; the core treats the returned label as an untrusted string either
// way.
type Classifier interface {
	Classify(ctx context.Context, imageName string, image []byte) (label string, confidence float64, err error)
}

// detection mirrors the label set the hosted classifier emits, locale
// qualifiers included
type detection struct {
	label      string
	confidence float64
}

var simulatedDetections = []detection{
	{label: "pot_hole_india", confidence: 0.95},
	{label: "broken_streetlight", confidence: 0.88},
	{label: "graffiti", confidence: 0.92},
	{label: "fly_tipping", confidence: 0.87},
	{label: "damaged_road_sign", confidence: 0.90},
}

// SimulatedClassifier returns a pseudo-random detection after a short
// artificial delay
type SimulatedClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand

	// Delay imitates model inference time; zero in tests
	Delay time.Duration
}

// NewSimulatedClassifier seeds the simulation
func NewSimulatedClassifier() *SimulatedClassifier {
	return &SimulatedClassifier{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Classify picks one of the simulated detections
func (c *SimulatedClassifier) Classify(ctx context.Context, imageName string, image []byte) (string, float64, error) {
	if c.Delay > 0 {
		select {
		case <-time.After(c.Delay):
		case <-ctx.Done():
			return "", 0, ctx.Err()
		}
	}

	c.mu.Lock()
	d := simulatedDetections[c.rng.Intn(len(simulatedDetections))]
	c.mu.Unlock()
	return d.label, d.confidence, nil
}
