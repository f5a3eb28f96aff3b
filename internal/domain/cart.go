package domain

// CartLine — строка корзины: ссылка на товар плюс снимок полей,
// нужных для отображения и расчета цены. Снимок фиксируется в момент
// добавления, чтобы итоги корзины не зависели от последующих изменений каталога.
type CartLine struct {
	ProductID string
	Name      string
	Price     int64 // цена за единицу в тийинах
	Image     string
	Quantity  int // инвариант: >= 1
}

// Subtotal возвращает стоимость строки (цена × количество) в тийинах.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart — упорядоченный список строк, уникальных по идентификатору товара.
// Повторное добавление товара увеличивает количество существующей строки,
// а не создает дубликат.
type Cart struct {
	lines []CartLine
	index map[string]int // ProductID -> позиция в lines
}

func NewCart() *Cart {
	return &Cart{
		index: make(map[string]int),
	}
}

// AddItem добавляет товар в корзину. Если строка для товара уже есть,
// ее количество увеличивается на 1, иначе создается новая строка с количеством 1.
func (c *Cart) AddItem(product *Product) {
	if i, ok := c.index[product.ID]; ok {
		c.lines[i].Quantity++
		return
	}

	c.index[product.ID] = len(c.lines)
	c.lines = append(c.lines, CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  1,
	})
}

// UpdateQuantity устанавливает количество для строки товара.
// Значения меньше 1 приводятся к 1: удаление строки происходит только
// через явный RemoveItem, нулевые строки в корзине не хранятся.
// Для неизвестного товара — no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}

	if quantity < 1 {
		quantity = 1
	}
	c.lines[i].Quantity = quantity
}

// RemoveItem удаляет строку товара, если она есть. Иначе — no-op.
func (c *Cart) RemoveItem(productID string) {
	i, ok := c.index[productID]
	if !ok {
		return
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Clear опустошает корзину.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Lines возвращает копию строк корзины в порядке добавления.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len возвращает количество строк в корзине.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total возвращает итог корзины: целочисленная сумма цена × количество
// по всем строкам. Плавающая точка не используется, округлений нет.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// TotalOf считает итог по произвольному набору строк по тому же правилу,
// что и Cart.Total. Используется при формировании заказа.
func TotalOf(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
