package portfolio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestDB creates a temporary database for testing and returns a Core
// instance. The caller should defer cleanup() to remove the temp dir.
func setupTestDB(t *testing.T) (*Core, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "portfolio-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	core, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open test db: %v", err)
	}

	cleanup := func() {
		core.Close()
		os.RemoveAll(tmpDir)
	}

	return core, cleanup
}

func floatPtr(v float64) *float64 { return &v }

func amountPtr(v float64) *Amount {
	a := NewAmount(v)
	return &a
}

// testHolding inserts a holding with sensible defaults and returns its id.
func testHolding(t *testing.T, core *Core, name, ticker, assetType string, costBasis, currentValue float64) int64 {
	t.Helper()
	id, err := core.AddHolding(AddHoldingRequest{
		Name:         name,
		Ticker:       ticker,
		AssetType:    assetType,
		Shares:       floatPtr(10),
		CostBasis:    amountPtr(costBasis),
		CurrentValue: amountPtr(currentValue),
	})
	if err != nil {
		t.Fatalf("failed to create test holding %s: %v", name, err)
	}
	return id
}

// floatEquals checks if two floats are approximately equal.
func floatEquals(a, b, epsilon float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}

// assertFloatEquals fails the test if the floats are not approximately equal.
func assertFloatEquals(t *testing.T, got, want float64, msg string) {
	t.Helper()
	if !floatEquals(got, want, 0.001) {
		t.Errorf("%s: got %.4f, want %.4f", msg, got, want)
	}
}

// assertAmountEquals fails the test if the Amount does not approximately
// equal want.
func assertAmountEquals(t *testing.T, got Amount, want float64, msg string) {
	t.Helper()
	if !floatEquals(got.InexactFloat64(), want, 0.001) {
		t.Errorf("%s: got %s, want %.4f", msg, got.String(), want)
	}
}

// assertNoError fails the test if err is not nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", msg, err)
	}
}

// assertError fails the test if err is nil.
func assertError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error but got nil", msg)
	}
}

// assertContains checks if the string contains the substring.
func assertContains(t *testing.T, s, substr, msg string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("%s: string %q does not contain %q", msg, s, substr)
	}
}
