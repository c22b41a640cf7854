package partner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates bronze customer", func(t *testing.T) {
		c, err := NewCustomer("Ada", "Lovelace", " Ada@Example.com ", "555-0100", nil)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", c.Email)
		assert.Equal(t, MembershipBronze, c.Membership)
		assert.Equal(t, "Ada Lovelace", c.FullName())
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewCustomer("Ada", "Lovelace", "not-an-email", "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email")
	})

	t.Run("rejects missing names", func(t *testing.T) {
		_, err := NewCustomer("", "Lovelace", "a@b.io", "", nil)
		assert.Error(t, err)
		_, err = NewCustomer("Ada", " ", "a@b.io", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects long phone", func(t *testing.T) {
		_, err := NewCustomer("Ada", "Lovelace", "a@b.io", "012345678901234567890", nil)
		assert.Error(t, err)
	})

	t.Run("rejects future birthdate", func(t *testing.T) {
		future := time.Now().AddDate(1, 0, 0)
		_, err := NewCustomer("Ada", "Lovelace", "a@b.io", "", &future)
		assert.Error(t, err)
	})
}

func TestCustomer_SetMembership(t *testing.T) {
	c, err := NewCustomer("Ada", "Lovelace", "a@b.io", "", nil)
	require.NoError(t, err)

	require.NoError(t, c.SetMembership(MembershipGold))
	assert.Equal(t, MembershipGold, c.Membership)
	assert.Equal(t, "Gold", c.Membership.Label())

	assert.Error(t, c.SetMembership(Membership("P")))
	assert.Equal(t, MembershipGold, c.Membership)
}

func TestNewAddress(t *testing.T) {
	a, err := NewAddress(1, " 1 Main St ", "Springfield")
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", a.Street)

	_, err = NewAddress(0, "1 Main St", "Springfield")
	assert.Error(t, err)
	_, err = NewAddress(1, "", "Springfield")
	assert.Error(t, err)
	_, err = NewAddress(1, "1 Main St", "")
	assert.Error(t, err)
}
