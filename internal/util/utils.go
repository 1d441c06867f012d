package util

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Epsilon is the tolerance used when comparing derived shader values
// between frames.
const Epsilon = 1e-5

// ApproxEqual reports whether a and b differ by at most eps
func ApproxEqual(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

// Clamp clamps a value between min and max
func Clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Bool01 maps a flag to the 1/0 float convention used by shader toggles
func Bool01(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDirIfNotExist creates the parent directory of path if needed
func CreateDirIfNotExist(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
