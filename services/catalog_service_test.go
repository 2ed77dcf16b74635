package services_test

import (
	"context"
	"testing"

	"commerce-backend/models"
	"commerce-backend/repository"
	"commerce-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ---- in-memory product repo ----

type memProductRepo struct {
	products map[uuid.UUID]*models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*models.Product)}
}

func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memProductRepo) Find(_ context.Context, _ repository.ProductFilter) ([]models.Product, int64, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *memProductRepo) Create(_ context.Context, product *models.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *memProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	p, ok := m.products[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		p.Description = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(int64)
	}
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.products[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range m.products {
		for _, cid := range p.CategoryIDs {
			if cid == categoryID {
				n++
			}
		}
	}
	return n, nil
}

// ---- in-memory category repo ----

type memCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memCategoryRepo) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCategoryRepo) Create(_ context.Context, category *models.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *memCategoryRepo) UpdateParent(_ context.Context, id uuid.UUID, parentID *uuid.UUID) error {
	c, ok := m.categories[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.ParentID = parentID
	return nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.categories, id)
	return nil
}

func (m *memCategoryRepo) HasChildren(_ context.Context, id uuid.UUID) (bool, error) {
	for _, c := range m.categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

// ---- fixture ----

type catalogFixture struct {
	svc        *services.CatalogService
	products   *memProductRepo
	categories *memCategoryRepo
	orders     *mockOrderRepo
}

func newCatalogFixture() *catalogFixture {
	f := &catalogFixture{
		products:   newMemProductRepo(),
		categories: newMemCategoryRepo(),
		orders:     &mockOrderRepo{},
	}
	f.svc = services.NewCatalogService(f.products, f.categories, f.orders, nil, zap.NewNop())
	return f
}

func (f *catalogFixture) addCategory(t *testing.T, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()
	c, err := f.svc.CreateCategory(context.Background(), services.CategoryCreateRequest{Name: name, ParentID: parentID})
	require.NoError(t, err)
	return c
}

func TestCreateAndGetProduct(t *testing.T) {
	f := newCatalogFixture()
	cat := f.addCategory(t, "Electronics", nil)

	p, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{
		Name:        "Keyboard",
		Price:       4500,
		CategoryIDs: []uuid.UUID{cat.ID},
	})
	require.NoError(t, err)

	got, err := f.svc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", got.Name)
	assert.Equal(t, int64(4500), got.Price)
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{
		Name:        "Keyboard",
		Price:       4500,
		CategoryIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestGetProductNotFound(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.svc.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestUpdateProductPartial(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{Name: "Keyboard", Price: 4500})
	require.NoError(t, err)

	newPrice := int64(3999)
	updated, err := f.svc.UpdateProduct(context.Background(), p.ID, services.ProductUpdateRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, int64(3999), updated.Price)
	assert.Equal(t, "Keyboard", updated.Name)
}

func TestDeleteProductReferencedByOrders(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{Name: "Keyboard", Price: 4500})
	require.NoError(t, err)

	f.orders.itemCount = 3

	err = f.svc.DeleteProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, services.ErrProductInUse)

	_, err = f.svc.GetProduct(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestDeleteProductUnreferenced(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{Name: "Keyboard", Price: 4500})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(context.Background(), p.ID))

	_, err = f.svc.GetProduct(context.Background(), p.ID)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	f := newCatalogFixture()
	f.addCategory(t, "Electronics", nil)

	_, err := f.svc.CreateCategory(context.Background(), services.CategoryCreateRequest{Name: "Electronics"})
	assert.ErrorIs(t, err, services.ErrCategoryExists)
}

func TestGetCategoryAncestors(t *testing.T) {
	f := newCatalogFixture()
	root := f.addCategory(t, "Electronics", nil)
	mid := f.addCategory(t, "Computers", &root.ID)
	leaf := f.addCategory(t, "Keyboards", &mid.ID)

	got, err := f.svc.GetCategory(context.Background(), leaf.ID)
	require.NoError(t, err)

	require.Len(t, got.Ancestors, 2)
	assert.Equal(t, mid.ID, got.Ancestors[0].ID)
	assert.Equal(t, root.ID, got.Ancestors[1].ID)
}

func TestReparentCategory(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)
	b := f.addCategory(t, "B", nil)

	require.NoError(t, f.svc.ReparentCategory(context.Background(), b.ID, &a.ID))

	got, err := f.svc.GetCategory(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, got.Ancestors, 1)
	assert.Equal(t, a.ID, got.Ancestors[0].ID)
}

func TestReparentCategoryRejectsSelfParent(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)

	err := f.svc.ReparentCategory(context.Background(), a.ID, &a.ID)
	assert.ErrorIs(t, err, services.ErrCategoryCycle)
}

func TestReparentCategoryRejectsCycle(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)
	b := f.addCategory(t, "B", &a.ID)
	c := f.addCategory(t, "C", &b.ID)

	// A under C would close A -> B -> C -> A.
	err := f.svc.ReparentCategory(context.Background(), a.ID, &c.ID)
	assert.ErrorIs(t, err, services.ErrCategoryCycle)
}

func TestReparentCategoryToRoot(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)
	b := f.addCategory(t, "B", &a.ID)

	require.NoError(t, f.svc.ReparentCategory(context.Background(), b.ID, nil))

	got, err := f.svc.GetCategory(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Ancestors)
}

func TestDeleteCategoryWithChildren(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)
	f.addCategory(t, "B", &a.ID)

	err := f.svc.DeleteCategory(context.Background(), a.ID)
	assert.ErrorIs(t, err, services.ErrCategoryInUse)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)
	_, err := f.svc.CreateProduct(context.Background(), services.ProductCreateRequest{
		Name:        "Keyboard",
		Price:       100,
		CategoryIDs: []uuid.UUID{a.ID},
	})
	require.NoError(t, err)

	err = f.svc.DeleteCategory(context.Background(), a.ID)
	assert.ErrorIs(t, err, services.ErrCategoryInUse)
}

func TestDeleteEmptyCategory(t *testing.T) {
	f := newCatalogFixture()
	a := f.addCategory(t, "A", nil)

	require.NoError(t, f.svc.DeleteCategory(context.Background(), a.ID))

	_, err := f.svc.GetCategory(context.Background(), a.ID)
	assert.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestCategoryTree(t *testing.T) {
	f := newCatalogFixture()
	root := f.addCategory(t, "Electronics", nil)
	f.addCategory(t, "Computers", &root.ID)
	f.addCategory(t, "Books", nil)

	tree, err := f.svc.CategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	for _, node := range tree {
		if node.ID == root.ID {
			require.Len(t, node.Children, 1)
			assert.Equal(t, "Computers", node.Children[0].Name)
		}
	}
}
