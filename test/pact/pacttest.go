//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "bizrecipe-api"
	ConsumerName = "vendor-portal"

	StateListingsBaseline = "listings baseline"
	StateListingExists    = "listing 7d3f0c4e exists"
	StateListingMissing   = "no listing with id 00000000"
)

const (
	ExistingListingID = "7d3f0c4e-5b7a-4c1e-9f2a-0d6b8e1a2c3f"
	MissingListingID  = "00000000-0000-0000-0000-000000000000"

	ExampleListingName = "Pact Laksa"
	ExampleVendorID    = "vendor-pact"
)

const (
	exampleImage = "https://example.pact/listings/laksa.png"
	examplePrice = "10.00"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the vendor portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleListingPayload provides stable create-listing data for pact interactions.
func ExampleListingPayload() map[string]any {
	return map[string]any{
		"name":         ExampleListingName,
		"ingredients":  []string{"noodles", "coconut milk"},
		"instructions": []string{"simmer", "serve"},
		"calories":     640,
		"image":        exampleImage,
		"price":        examplePrice,
		"submittedBy":  ExampleVendorID,
	}
}

// ExampleOrderPayload provides stable order submission data.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"buyer":           "buyer-pact",
		"quantity":        3,
		"deliveryAddress": "1 Pact Street",
		"status":          "Placed",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
