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
	ProviderName = "commerce-api"
	ConsumerName = "storefront-web"

	StateBaseline      = "store baseline"
	StateCatalogSeeded = "a customer and stocked products exist"
	StateStockDepleted = "a product with a single unit in stock exists"
)

// Stable identifiers shared by the consumer interactions and the provider
// state handlers.
const (
	ExistingCustomerID = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	MissingCustomerID  = "de305d54-75b4-431b-adb2-eb6b9e546014"
	KeyboardProductID  = "9b2f7a6e-1c3d-4e5f-8a9b-0c1d2e3f4a5b"
	ScarceProductID    = "3d594650-3436-4d45-a8ee-60a663b83bfe"
)

const (
	ExampleCustomerName  = "Pact Customer"
	ExampleCustomerEmail = "pact.customer@example.com"
	KeyboardProductName  = "Pact Keyboard"
	KeyboardProductPrice = "49.90"
	ScarceProductName    = "Pact Limited Print"
	ScarceProductPrice   = "120.00"
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

// PactFile returns the canonical pact file path for the storefront consumer.
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

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
