package memory_test

import (
	"testing"

	"github.com/dmoraisb/maitred/pkg/adapters/memory"
	"github.com/dmoraisb/maitred/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}
