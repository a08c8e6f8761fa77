// assets/embed.go
//
// Static data compiled into the binary.
//   - phases.yaml: the five-phase catalog (names, number ranges, colors).

package assets

import (
	"embed"
)

//go:embed phases.yaml
var FS embed.FS

// PhasesYAML returns the raw embedded phase catalog document.
func PhasesYAML() ([]byte, error) {
	return FS.ReadFile("phases.yaml")
}
