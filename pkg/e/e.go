package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки каталога
	ErrCatalogUnavailable = fmt.Errorf("catalog service unavailable")
	ErrProductNotFound    = fmt.Errorf("product not found")
	ErrCategoryNotFound   = fmt.Errorf("category not found")

	// Ошибки корзины
	ErrCartEmpty       = fmt.Errorf("cart is empty")
	ErrInvalidQuantity = fmt.Errorf("quantity must be a positive integer")

	// Ошибки заказов
	ErrOrderNotFound     = fmt.Errorf("order not found")
	ErrInvalidTransition = fmt.Errorf("invalid order status transition")
	ErrUnknownStatus     = fmt.Errorf("unknown order status")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrPhoneRequired        = fmt.Errorf("phone is required")
	ErrInvalidPhone         = fmt.Errorf("phone must be +998 followed by 9 digits")
	ErrLocationRequired     = fmt.Errorf("location is required")
	ErrProductNameRequired  = fmt.Errorf("product name is required")
	ErrCategoryNameRequired = fmt.Errorf("category name is required")
	ErrPriceMustBePositive  = fmt.Errorf("price must be positive")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 401 Unauthorized / 403 Forbidden
	ErrInitDataRequired = fmt.Errorf("telegram init data is required")
	ErrInvalidInitData  = fmt.Errorf("telegram init data verification failed")
	ErrInitDataExpired  = fmt.Errorf("telegram init data expired")
	ErrNotAdmin         = fmt.Errorf("user is not an admin")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
