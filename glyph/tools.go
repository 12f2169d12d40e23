package ottava

import (
	"math"
	"os"
	"strconv"
)

// FillEnvVar returns the value of a runtime Environment Variable
func FillEnvVar(ev string) string {
	// If the EnvVar doesn't exist return a default string
	value := os.Getenv(ev)
	if value == "" {
		value = "ENOENT"
	}
	return value
}

// FillEnvVarInt reads an integer Environment Variable,
// falling back to /def/ when unset or unparseable.
func FillEnvVarInt(ev string, def int) int {
	value := os.Getenv(ev)
	if value == "" {
		return def
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return i
}

// FloatPrecise rounds to /p/ decimal places for display.
func FloatPrecise(f float64, p int) float64 {
	shift := math.Pow(10, float64(p))
	return math.Round(f*shift) / shift
}
