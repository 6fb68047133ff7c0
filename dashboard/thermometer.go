package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// SensorReader lists the temperature sensors of the host.
type SensorReader func(ctx context.Context) ([]host.TemperatureStat, error)

// Thermometer samples one temperature sensor and tracks the lowest and
// highest values seen.
type Thermometer struct {
	key      string
	read     SensorReader
	low      float64
	high     float64
	observed bool
}

// NewThermometer returns a thermometer reading the first host sensor whose
// key contains key; an empty key picks the first sensor.
func NewThermometer(key string) *Thermometer {
	return NewThermometerWith(key, host.SensorsTemperaturesWithContext)
}

// NewThermometerWith is NewThermometer with a custom sensor source.
func NewThermometerWith(key string, read SensorReader) *Thermometer {
	return &Thermometer{key: key, read: read}
}

// Read samples the sensor.
func (t *Thermometer) Read(ctx context.Context) (Reading, error) {
	stats, err := t.read(ctx)
	// gopsutil reports unreadable sensors as warnings next to the readable
	// ones.
	if err != nil && len(stats) == 0 {
		return Reading{}, fmt.Errorf("dashboard: reading sensors: %w", err)
	}
	for _, s := range stats {
		if strings.Contains(s.SensorKey, t.key) {
			return t.observe(s.Temperature), nil
		}
	}
	return Reading{}, fmt.Errorf("dashboard: no sensor matching %q", t.key)
}

func (t *Thermometer) observe(v float64) Reading {
	if !t.observed || v < t.low {
		t.low = v
	}
	if !t.observed || v > t.high {
		t.high = v
	}
	t.observed = true
	return Reading{
		Current: round(v),
		Low:     round(t.low),
		High:    round(t.high),
	}
}

func round(v float64) int {
	return int(math.RoundToEven(v))
}
