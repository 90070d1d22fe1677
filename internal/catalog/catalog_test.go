package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leadgate/internal/catalog"
)

func TestCatalog_Resolve(t *testing.T) {
	slot, ok := catalog.Default.Resolve("PAN Card")
	assert.True(t, ok)
	assert.Equal(t, "pan_card", slot.Key)
	assert.False(t, slot.Multiple)
}

func TestCatalog_Resolve_Multiple(t *testing.T) {
	slot, ok := catalog.Default.Resolve("Salary Slip (Last 3 Months)")
	assert.True(t, ok)
	assert.True(t, slot.Multiple)

	slot, ok = catalog.Default.Resolve("Bank Statement (Last 6 Months)")
	assert.True(t, ok)
	assert.True(t, slot.Multiple)
}

func TestCatalog_Resolve_Unknown(t *testing.T) {
	_, ok := catalog.Default.Resolve("Totally Unknown Document")
	assert.False(t, ok)
}

func TestCatalog_ResolveKey(t *testing.T) {
	slot, ok := catalog.Default.ResolveKey("aadhaar_card")
	assert.True(t, ok)
	assert.Equal(t, "Aadhaar Card", slot.Label)

	_, ok = catalog.Default.ResolveKey("nope")
	assert.False(t, ok)
}

func TestCatalog_Labels_CoversAllSlots(t *testing.T) {
	labels := catalog.Default.Labels()
	assert.NotEmpty(t, labels)
	for _, label := range labels {
		slot, ok := catalog.Default.Resolve(label)
		assert.True(t, ok, "label %q should resolve", label)
		assert.Equal(t, label, slot.Label)
	}
}
