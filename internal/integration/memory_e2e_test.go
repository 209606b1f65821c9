//go:build integration || !unit

package integration

import (
	"testing"

	"clientvoice/internal/storage/memory"
)

func TestE2E_PublicPage_Memory(t *testing.T) {
	runPublicPageScenario(t, memory.New())
}
