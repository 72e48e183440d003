package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		want     string
	}{
		{"full name preferred", Customer{FullName: "Ramesh Gupta", ShopName: "Gupta Tea House"}, "Ramesh Gupta"},
		{"shop name fallback", Customer{ShopName: "Gupta Tea House"}, "Gupta Tea House"},
		{"whitespace full name skipped", Customer{FullName: "   ", ShopName: "Sharma Traders"}, "Sharma Traders"},
		{"nothing usable", Customer{}, FallbackDisplayName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.customer.DisplayName())
		})
	}
}

func TestCustomerReachablePhone(t *testing.T) {
	c := Customer{Phone: "098765 43210", WhatsappPhone: "+91 91234 56789"}
	got, ok := c.ReachablePhone("91")
	assert.True(t, ok)
	assert.Equal(t, "919123456789", got, "whatsapp number wins over general phone")

	c = Customer{Phone: "12"}
	_, ok = c.ReachablePhone("91")
	assert.False(t, ok)

	c = Customer{}
	_, ok = c.ReachablePhone("91")
	assert.False(t, ok)
}

func TestIndex(t *testing.T) {
	customers := []Customer{
		{ID: "c1", FullName: "First"},
		{ID: "", FullName: "No ID"},
		{ID: "c1", FullName: "Re-synced"},
		{ID: "c2", FullName: "Second"},
	}

	idx := Index(customers)
	assert.Len(t, idx, 2)
	assert.Equal(t, "Re-synced", idx["c1"].FullName)
	assert.Equal(t, "Second", idx["c2"].FullName)
}
