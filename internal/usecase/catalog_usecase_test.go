package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otkirbek-shop/go-storefront/internal/domain"
	"github.com/otkirbek-shop/go-storefront/pkg/e"
)

func testProducts() []domain.Product {
	return []domain.Product{
		*domain.NewProduct("p1", "Плов", 4_500_000, "c1"),
		*domain.NewProduct("p2", "Лагман", 3_800_000, "c1"),
	}
}

func testCategories() []domain.Category {
	return []domain.Category{
		*domain.NewCategory("c1", "Горячие блюда", "🍲"),
	}
}

func healthyGateway() *fakeGateway {
	return &fakeGateway{
		fetchProductsFn: func(_ context.Context) ([]domain.Product, error) {
			return testProducts(), nil
		},
		fetchCategoriesFn: func(_ context.Context) ([]domain.Category, error) {
			return testCategories(), nil
		},
	}
}

func newTestCatalogUC(gateway *fakeGateway, images *fakeImagesInfra) *CatalogUseCase {
	if images == nil {
		images = &fakeImagesInfra{}
	}
	return NewCatalogUC(gateway, images, testLogger(), 5*time.Second)
}

func TestCatalogUseCase_Refresh(t *testing.T) {
	t.Run("успешная загрузка наполняет снимок", func(t *testing.T) {
		uc := newTestCatalogUC(healthyGateway(), nil)

		require.NoError(t, uc.Refresh(context.Background()))

		assert.Len(t, uc.GetProducts(context.Background()), 2)
		assert.Len(t, uc.GetCategories(context.Background()), 1)
	})

	t.Run("ошибка загрузки товаров оставляет каталог пустым", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.fetchProductsFn = func(_ context.Context) ([]domain.Product, error) {
			return nil, errors.New("upstream down")
		}
		uc := newTestCatalogUC(gateway, nil)

		err := uc.Refresh(context.Background())

		require.Error(t, err)
		assert.Empty(t, uc.GetProducts(context.Background()))
		assert.Empty(t, uc.GetCategories(context.Background()))
	})

	t.Run("ошибка загрузки категорий сбрасывает и товары", func(t *testing.T) {
		gateway := healthyGateway()
		uc := newTestCatalogUC(gateway, nil)
		require.NoError(t, uc.Refresh(context.Background()))

		gateway.fetchCategoriesFn = func(_ context.Context) ([]domain.Category, error) {
			return nil, errors.New("timeout")
		}

		require.Error(t, uc.Refresh(context.Background()))
		assert.Empty(t, uc.GetProducts(context.Background()))
	})
}

func TestCatalogUseCase_GetProductByID(t *testing.T) {
	uc := newTestCatalogUC(healthyGateway(), nil)
	require.NoError(t, uc.Refresh(context.Background()))

	t.Run("известный товар", func(t *testing.T) {
		product, err := uc.GetProductByID(context.Background(), "p2")

		require.NoError(t, err)
		assert.Equal(t, "Лагман", product.Name)
	})

	t.Run("неизвестный товар", func(t *testing.T) {
		_, err := uc.GetProductByID(context.Background(), "ghost")

		assert.ErrorIs(t, err, e.ErrProductNotFound)
	})

	t.Run("возвращается копия, снимок не мутируется", func(t *testing.T) {
		product, err := uc.GetProductByID(context.Background(), "p1")
		require.NoError(t, err)

		product.Name = "испорчено"

		again, err := uc.GetProductByID(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, "Плов", again.Name)
	})
}

func TestCatalogUseCase_AddProduct(t *testing.T) {
	t.Run("пустое имя", func(t *testing.T) {
		uc := newTestCatalogUC(healthyGateway(), nil)

		_, err := uc.AddProduct(context.Background(), NewAddProductReq("   ", "c1", 100, "", nil))

		assert.ErrorIs(t, err, e.ErrProductNameRequired)
	})

	t.Run("неположительная цена", func(t *testing.T) {
		uc := newTestCatalogUC(healthyGateway(), nil)

		_, err := uc.AddProduct(context.Background(), NewAddProductReq("Самса", "c1", 0, "", nil))

		assert.ErrorIs(t, err, e.ErrPriceMustBePositive)
	})

	t.Run("успех зеркалирует товар в снимок", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.createProductFn = func(_ context.Context, product *domain.Product) (*domain.Product, error) {
			created := *product
			created.ID = "p3"
			return &created, nil
		}
		uc := newTestCatalogUC(gateway, nil)
		require.NoError(t, uc.Refresh(context.Background()))

		created, err := uc.AddProduct(context.Background(), NewAddProductReq("Самса", "c1", 1_200_000, "с мясом", nil))

		require.NoError(t, err)
		assert.Equal(t, "p3", created.ID)

		fromSnapshot, err := uc.GetProductByID(context.Background(), "p3")
		require.NoError(t, err)
		assert.Equal(t, "Самса", fromSnapshot.Name)
	})

	t.Run("ошибка каталога зачищает загруженные изображения", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.createProductFn = func(_ context.Context, _ *domain.Product) (*domain.Product, error) {
			return nil, errors.New("catalog rejected")
		}
		images := &fakeImagesInfra{
			uploadFn: func(_ context.Context, _ *UploadImagesReq) (*UploadImagesRes, error) {
				return NewUploadImagesRes([]string{"products/samsa/1.jpg"}), nil
			},
		}
		uc := newTestCatalogUC(gateway, images)

		img := []ProductImage{*NewProductImage([]byte{0xFF}, "image/jpeg", 1, "samsa.jpg")}
		_, err := uc.AddProduct(context.Background(), NewAddProductReq("Самса", "c1", 100, "", img))

		require.Error(t, err)
		require.Len(t, images.cleanedUp, 1)
		assert.Equal(t, []string{"products/samsa/1.jpg"}, images.cleanedUp[0])
	})

	t.Run("ошибка загрузки изображений не трогает каталог", func(t *testing.T) {
		gateway := healthyGateway()
		created := false
		gateway.createProductFn = func(_ context.Context, _ *domain.Product) (*domain.Product, error) {
			created = true
			return nil, nil
		}
		images := &fakeImagesInfra{
			uploadFn: func(_ context.Context, _ *UploadImagesReq) (*UploadImagesRes, error) {
				return nil, errors.New("minio down")
			},
		}
		uc := newTestCatalogUC(gateway, images)

		img := []ProductImage{*NewProductImage([]byte{0xFF}, "image/jpeg", 1, "samsa.jpg")}
		_, err := uc.AddProduct(context.Background(), NewAddProductReq("Самса", "c1", 100, "", img))

		require.Error(t, err)
		assert.False(t, created)
		assert.Empty(t, images.cleanedUp)
	})
}

func TestCatalogUseCase_DeleteProduct(t *testing.T) {
	t.Run("успех убирает товар из снимка", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.deleteProductFn = func(_ context.Context, _ string) error { return nil }
		uc := newTestCatalogUC(gateway, nil)
		require.NoError(t, uc.Refresh(context.Background()))

		require.NoError(t, uc.DeleteProduct(context.Background(), "p1"))

		_, err := uc.GetProductByID(context.Background(), "p1")
		assert.ErrorIs(t, err, e.ErrProductNotFound)
		assert.Len(t, uc.GetProducts(context.Background()), 1)
	})

	t.Run("ошибка удаленного вызова не трогает снимок", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.deleteProductFn = func(_ context.Context, _ string) error {
			return errors.New("catalog unavailable")
		}
		uc := newTestCatalogUC(gateway, nil)
		require.NoError(t, uc.Refresh(context.Background()))

		require.Error(t, uc.DeleteProduct(context.Background(), "p1"))
		assert.Len(t, uc.GetProducts(context.Background()), 2)
	})
}

func TestCatalogUseCase_AddCategory(t *testing.T) {
	t.Run("пустое имя", func(t *testing.T) {
		uc := newTestCatalogUC(healthyGateway(), nil)

		_, err := uc.AddCategory(context.Background(), &AddCategoryReq{Name: "  "})

		assert.ErrorIs(t, err, e.ErrCategoryNameRequired)
	})

	t.Run("успех зеркалирует категорию", func(t *testing.T) {
		gateway := healthyGateway()
		gateway.createCategoryFn = func(_ context.Context, category *domain.Category) (*domain.Category, error) {
			created := *category
			created.ID = "c2"
			return &created, nil
		}
		uc := newTestCatalogUC(gateway, nil)
		require.NoError(t, uc.Refresh(context.Background()))

		created, err := uc.AddCategory(context.Background(), &AddCategoryReq{Name: "Напитки", Icon: "🥤"})

		require.NoError(t, err)
		assert.Equal(t, "c2", created.ID)
		assert.Len(t, uc.GetCategories(context.Background()), 2)
	})
}
