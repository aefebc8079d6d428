//go:build integration
// +build integration

// internal/repository/postgres/postgres_integration_test.go
package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"productstore/internal/domain"
	"productstore/internal/repository"
	"productstore/internal/util"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS users (
    id    BIGSERIAL PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS products (
    id    BIGSERIAL PRIMARY KEY,
    name  TEXT NOT NULL,
    price NUMERIC(12,2) NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id      BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS orders_products (
    order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    PRIMARY KEY (order_id, product_id)
);`

var (
	testDB      *sqlx.DB
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
)

// TestMain starts a disposable PostgreSQL container, creates the schema and
// wires the repositories that all tests in this package share.
func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("productstore_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start PostgreSQL container: %v\n", err)
		os.Exit(1)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		os.Exit(1)
	}

	testDB, err = sqlx.Connect("postgres", connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to test database: %v\n", err)
		os.Exit(1)
	}

	if _, err := testDB.Exec(testSchema); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create schema: %v\n", err)
		os.Exit(1)
	}

	userRepo = NewUserRepository(testDB)
	productRepo = NewProductRepository(testDB)
	orderRepo = NewOrderRepository(testDB)

	code := m.Run()

	testDB.Close()
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to terminate container: %v\n", err)
	}
	os.Exit(code)
}

// clearDatabase truncates all tables so each test starts from a clean state.
func clearDatabase(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec(`TRUNCATE TABLE orders_products, orders, products, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func createTestUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user := domain.NewUser(name, email)
	require.NoError(t, userRepo.Save(context.Background(), user))
	require.NotZero(t, user.ID)
	return user
}

func createTestProduct(t *testing.T, name string, price string) *domain.Product {
	t.Helper()
	product := domain.NewProduct(name, decimal.RequireFromString(price))
	require.NoError(t, productRepo.Save(context.Background(), product))
	require.NotZero(t, product.ID)
	return product
}

func createTestOrder(t *testing.T, user *domain.User, products ...domain.Product) *domain.Order {
	t.Helper()
	order := domain.NewOrder(*user, products)
	require.NoError(t, orderRepo.Save(context.Background(), order))
	require.NotZero(t, order.ID)
	return order
}

func junctionRowCount(t *testing.T, orderID, productID int64) int {
	t.Helper()
	var count int
	err := testDB.Get(&count, `SELECT COUNT(*) FROM orders_products WHERE order_id = $1 AND product_id = $2`,
		orderID, productID)
	require.NoError(t, err)
	return count
}

func TestOrderRoundTrip(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	mouse := createTestProduct(t, "Mouse", "20.00")
	order := createTestOrder(t, ann, *keyboard, *mouse)

	got, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, ann.ID, got.User.ID)
	assert.Equal(t, "ann@example.com", got.User.Email)
	require.Len(t, got.Products, 2)
	assert.Equal(t, keyboard.ID, got.Products[0].ID)
	assert.True(t, got.Products[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, mouse.ID, got.Products[1].ID)
	assert.True(t, got.Products[1].Price.Equal(decimal.RequireFromString("20.00")))

	// The owning user reflects the order through the derived id list.
	gotUser, err := userRepo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{order.ID}, gotUser.OrderIDs)

	// Deleting one product shrinks the order's product list on reread.
	require.NoError(t, productRepo.Delete(ctx, keyboard.ID))

	got, err = orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, mouse.ID, got.Products[0].ID)
}

func TestSaveOrderIsAtomic(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")

	order := domain.NewOrder(*ann, []domain.Product{{ID: 9999, Name: "Ghost"}})
	err := orderRepo.Save(ctx, order)
	require.Error(t, err)

	// The failed association must roll back the order row too.
	assert.Zero(t, order.ID)
	var count int
	require.NoError(t, testDB.Get(&count, `SELECT COUNT(*) FROM orders`))
	assert.Equal(t, 0, count)
}

func TestAddProductsIsIdempotent(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	order := createTestOrder(t, ann, *keyboard)

	require.NoError(t, orderRepo.AddProducts(ctx, order.ID, []int64{keyboard.ID}))
	require.NoError(t, orderRepo.AddProducts(ctx, order.ID, []int64{keyboard.ID}))

	assert.Equal(t, 1, junctionRowCount(t, order.ID, keyboard.ID))

	got, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)
}

func TestOrderUpdateReplacesProductSet(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	mouse := createTestProduct(t, "Mouse", "20.00")
	monitor := createTestProduct(t, "Monitor", "150.00")
	order := createTestOrder(t, ann, *keyboard, *mouse)

	order.Products = []domain.Product{*monitor}
	require.NoError(t, orderRepo.Update(ctx, order))

	got, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, monitor.ID, got.Products[0].ID)
}

func TestOrderUpdateUnknownOrder(t *testing.T) {
	clearDatabase(t)

	ann := createTestUser(t, "Ann", "ann@example.com")
	order := &domain.Order{ID: 9999, User: *ann, Products: []domain.Product{}}

	err := orderRepo.Update(context.Background(), order)
	assert.True(t, util.IsError(err, util.ErrNotFound))
}

func TestOrderPaginationCountsOrdersNotRows(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	mouse := createTestProduct(t, "Mouse", "20.00")

	for i := 0; i < 10; i++ {
		createTestOrder(t, ann, *keyboard, *mouse)
	}

	// Each order contributes two joined rows, yet a page of five must hold
	// five orders, each with both products.
	page1, err := orderRepo.FindPage(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, page1, 5)
	for _, order := range page1 {
		assert.Len(t, order.Products, 2)
	}

	page2, err := orderRepo.FindPage(ctx, 2, 5)
	require.NoError(t, err)
	require.Len(t, page2, 5)

	assert.Less(t, page1[4].ID, page2[0].ID)

	page3, err := orderRepo.FindPage(ctx, 3, 5)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestZeroProductOrderAssembles(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	order := createTestOrder(t, ann)

	got, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Products)
	assert.Empty(t, got.Products)

	all, err := orderRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Products)
}

func TestDeleteUserCascades(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	bob := createTestUser(t, "Bob", "bob@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	annOrder := createTestOrder(t, ann, *keyboard)
	bobOrder := createTestOrder(t, bob, *keyboard)

	require.NoError(t, userRepo.Delete(ctx, ann.ID))

	_, err := orderRepo.FindByID(ctx, annOrder.ID)
	assert.True(t, util.IsError(err, util.ErrNotFound))
	assert.Equal(t, 0, junctionRowCount(t, annOrder.ID, keyboard.ID))

	// Bob's order and the shared product survive.
	got, err := orderRepo.FindByID(ctx, bobOrder.ID)
	require.NoError(t, err)
	assert.Len(t, got.Products, 1)

	_, err = productRepo.FindByID(ctx, keyboard.ID)
	assert.NoError(t, err)
}

func TestSaveUserDuplicateEmail(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	createTestUser(t, "Ann", "ann@example.com")

	err := userRepo.Save(ctx, domain.NewUser("Another Ann", "ann@example.com"))
	assert.True(t, util.IsError(err, util.ErrDuplicateEntry))
}

func TestUpdateEmailPersists(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")

	require.NoError(t, userRepo.UpdateEmail(ctx, ann.ID, "ann@corp.example.com"))

	got, err := userRepo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@corp.example.com", got.Email)
	assert.Equal(t, "Ann", got.Name)
}

func TestUserPagination(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		createTestUser(t, fmt.Sprintf("User %d", i), fmt.Sprintf("user%d@example.com", i))
	}

	page1, err := userRepo.FindPage(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	page3, err := userRepo.FindPage(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestFindProductWithOrders(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	order1 := createTestOrder(t, ann, *keyboard)
	order2 := createTestOrder(t, ann, *keyboard)

	got, err := productRepo.FindWithOrdersByID(ctx, keyboard.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", got.Name)
	assert.Equal(t, []int64{order1.ID, order2.ID}, got.OrderIDs)

	// A product outside any order still resolves, with an empty id list.
	mouse := createTestProduct(t, "Mouse", "20.00")
	got, err = productRepo.FindWithOrdersByID(ctx, mouse.ID)
	require.NoError(t, err)
	assert.Empty(t, got.OrderIDs)
}

func TestProductsByOrder(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	ann := createTestUser(t, "Ann", "ann@example.com")
	keyboard := createTestProduct(t, "Keyboard", "10.00")
	mouse := createTestProduct(t, "Mouse", "20.00")
	order := createTestOrder(t, ann, *keyboard, *mouse)

	products, err := orderRepo.ProductsByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, keyboard.ID, products[0].ID)
	assert.Equal(t, mouse.ID, products[1].ID)
}

func TestProductUpdatePersists(t *testing.T) {
	clearDatabase(t)
	ctx := context.Background()

	keyboard := createTestProduct(t, "Keyboard", "10.00")

	keyboard.ApplyUpdate("Mechanical Keyboard", decimal.RequireFromString("15.50"))
	require.NoError(t, productRepo.Update(ctx, keyboard))

	got, err := productRepo.FindByID(ctx, keyboard.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("15.50")))
}
