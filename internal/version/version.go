// ABOUTME: Version information
// ABOUTME: Product name, version and maintainer reported by the CLI
package version

const (
	// Version is the mpegsync release
	Version = "0.3.0"

	// Product is the program name
	Product = "mpegsync"

	// Manufacturer is the maintaining organization
	Manufacturer = "Resonate Protocol"
)

// String returns the product and version
func String() string {
	return Product + " " + Version
}
