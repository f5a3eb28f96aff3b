package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id string, price int64) *Product {
	return NewProduct(id, "товар "+id, price, "cat-1")
}

func TestCart_AddItem(t *testing.T) {
	t.Run("новый товар создает строку с количеством 1", func(t *testing.T) {
		cart := NewCart()

		cart.AddItem(testProduct("p1", 100_00))

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "p1", lines[0].ProductID)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, int64(100_00), lines[0].Price)
	})

	t.Run("повторное добавление увеличивает количество, а не дублирует строку", func(t *testing.T) {
		cart := NewCart()

		cart.AddItem(testProduct("p1", 100_00))
		cart.AddItem(testProduct("p1", 100_00))
		cart.AddItem(testProduct("p1", 100_00))

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity)
	})

	t.Run("порядок строк соответствует порядку первого добавления", func(t *testing.T) {
		cart := NewCart()

		cart.AddItem(testProduct("p1", 100_00))
		cart.AddItem(testProduct("p2", 200_00))
		cart.AddItem(testProduct("p1", 100_00))

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p1", lines[0].ProductID)
		assert.Equal(t, "p2", lines[1].ProductID)
	})

	t.Run("снимок цены не меняется при изменении каталога", func(t *testing.T) {
		cart := NewCart()
		product := testProduct("p1", 100_00)

		cart.AddItem(product)
		product.Price = 999_00

		assert.Equal(t, int64(100_00), cart.Lines()[0].Price)
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{name: "обычное значение", quantity: 5, want: 5},
		{name: "ноль приводится к 1", quantity: 0, want: 1},
		{name: "отрицательное приводится к 1", quantity: -3, want: 1},
		{name: "единица остается единицей", quantity: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := NewCart()
			cart.AddItem(testProduct("p1", 100_00))

			cart.UpdateQuantity("p1", tt.quantity)

			assert.Equal(t, tt.want, cart.Lines()[0].Quantity)
		})
	}

	t.Run("неизвестный товар — no-op", func(t *testing.T) {
		cart := NewCart()
		cart.AddItem(testProduct("p1", 100_00))

		cart.UpdateQuantity("unknown", 7)

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	t.Run("удаление средней строки сохраняет порядок и индекс", func(t *testing.T) {
		cart := NewCart()
		cart.AddItem(testProduct("p1", 100_00))
		cart.AddItem(testProduct("p2", 200_00))
		cart.AddItem(testProduct("p3", 300_00))

		cart.RemoveItem("p2")

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p1", lines[0].ProductID)
		assert.Equal(t, "p3", lines[1].ProductID)

		// Индекс после удаления остается согласованным
		cart.UpdateQuantity("p3", 4)
		assert.Equal(t, 4, cart.Lines()[1].Quantity)
	})

	t.Run("неизвестный товар — no-op", func(t *testing.T) {
		cart := NewCart()
		cart.AddItem(testProduct("p1", 100_00))

		cart.RemoveItem("unknown")

		assert.Equal(t, 1, cart.Len())
	})
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("p1", 100_50))
	cart.AddItem(testProduct("p1", 100_50))
	cart.AddItem(testProduct("p2", 45_000_00))

	// 2*10050 + 1*4500000
	assert.Equal(t, int64(2*100_50+45_000_00), cart.Total())

	cart.Clear()
	assert.Equal(t, int64(0), cart.Total())
	assert.Equal(t, 0, cart.Len())
}

func TestTotalOf(t *testing.T) {
	lines := []CartLine{
		{ProductID: "p1", Price: 100_00, Quantity: 3},
		{ProductID: "p2", Price: 250_00, Quantity: 2},
	}

	assert.Equal(t, int64(3*100_00+2*250_00), TotalOf(lines))
	assert.Equal(t, int64(0), TotalOf(nil))
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	cart := NewCart()
	cart.AddItem(testProduct("p1", 100_00))

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}
