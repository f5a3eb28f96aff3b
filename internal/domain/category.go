package domain

// Category описывает категорию товаров.
// ProductCount денормализован и приходит из каталога как есть,
// на клиентской стороне не пересчитывается.
type Category struct {
	ID           string
	Name         string
	Icon         string
	ProductCount int
}

func NewCategory(id, name, icon string) *Category {
	return &Category{
		ID:   id,
		Name: name,
		Icon: icon,
	}
}
