package domain

// Product описывает товар витрины.
// Источником истины является удаленный каталог, клиентская сторона
// товары не изменяет (кроме админских add/delete).
type Product struct {
	ID            string
	Name          string
	Price         int64 // Цена хранится в тийинах (минимальная денежная единица)
	OriginalPrice *int64
	CostPrice     *int64 // себестоимость, видна только админу
	Image         string
	CategoryID    string
	Description   string
	Rating        float64
	Reviews       int
	Discount      int // процент скидки, 0–100
	InStock       bool
}

func NewProduct(id, name string, price int64, categoryID string) *Product {
	return &Product{
		ID:         id,
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		InStock:    true,
	}
}
