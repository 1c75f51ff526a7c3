package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(100, 1)
		require.NoError(t, err)
		num, err := m.Numerator()
		require.NoError(t, err)
		assert.Equal(t, int64(100), num)
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestParseMoney(t *testing.T) {
	t.Run("plain decimal", func(t *testing.T) {
		m, err := ParseMoney("12.5")
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("integer", func(t *testing.T) {
		m, err := ParseMoney("40")
		require.NoError(t, err)
		assert.Equal(t, "40.00", m.String())
	})

	t.Run("currency-formatted legacy string", func(t *testing.T) {
		m, err := ParseMoney("$12.50")
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("amount with currency suffix", func(t *testing.T) {
		m, err := ParseMoney("19.99 TND")
		require.NoError(t, err)
		assert.Equal(t, "19.99", m.String())
	})

	t.Run("comma decimal separator", func(t *testing.T) {
		m, err := ParseMoney("12,50")
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseMoney("free")
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := ParseMoney("  ")
		assert.Error(t, err)
	})
}

func TestMoney_IsSafeForStorage(t *testing.T) {
	m, _ := NewMoney(1999, 100)
	assert.True(t, m.IsSafeForStorage())

	huge, err := ParseMoney("1e100000")
	require.NoError(t, err)
	assert.False(t, huge.IsSafeForStorage())
}

func TestMoney_Add(t *testing.T) {
	m1, _ := NewMoney(100, 1)
	m2, _ := NewMoney(55, 10)

	assert.Equal(t, "105.50", m1.Add(m2).String())
}

func TestMoney_MultiplyInt(t *testing.T) {
	m, _ := NewMoney(1050, 100) // 10.50

	assert.Equal(t, "31.50", m.MultiplyInt(3).String())
	assert.Equal(t, "0.00", m.MultiplyInt(0).String())
}

func TestMoney_MinorUnits(t *testing.T) {
	m, _ := NewMoney(1999, 100) // 19.99
	assert.Equal(t, int64(1999), m.MinorUnits())

	whole, _ := NewMoney(40, 1)
	assert.Equal(t, int64(4000), whole.MinorUnits())
}

func TestMoney_Copy(t *testing.T) {
	m1, _ := NewMoney(100, 1)
	m2 := m1.Copy()

	m3 := m1.Add(m2)
	assert.True(t, m1.Equals(m2))
	assert.Equal(t, "200.00", m3.String())
}
