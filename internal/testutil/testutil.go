package testutil

import (
	"context"
	"database/sql"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"

	"inventoryManagement/internal/db"
	"inventoryManagement/models"
	"inventoryManagement/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// A shared-cache name keeps multiple connections on the same DB if needed.
// Closing is registered via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// GenerateJWTHS256 returns a signed JWT string with the claims the app uses.
func GenerateJWTHS256(t *testing.T, secret, username, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"username": username,
		"role":     role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// SeedProduct inserts a minimal product with the given name, price and
// quantity and returns it.
func SeedProduct(t *testing.T, repo *repository.ProductRepository, name string, price float64, qty int) *models.Product {
	t.Helper()
	p, err := repo.Create(context.Background(), &models.Product{
		Name:     name,
		Price:    price,
		Quantity: qty,
		Brand:    "Natura",
		Style:    "Perfumaria",
		Type:     "Colônias",
	})
	if err != nil {
		t.Fatalf("seed product %q: %v", name, err)
	}
	return p
}
