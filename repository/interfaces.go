package repository

import (
	"context"
	"errors"

	"inventoryManagement/models"
)

// ErrProductNotFound is returned by sale recording when the product id does
// not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned by sale recording when the remaining
// quantity is smaller than the units requested. The decrement is guarded at
// the store, so two sessions racing to sell the last unit cannot drive the
// quantity negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrUsernameTaken is returned by user creation when the username already
// exists.
var ErrUsernameTaken = errors.New("username already exists")

// ProductRepositoryI defines operations on Product entities.
type ProductRepositoryI interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByBrand(ctx context.Context, brand string) ([]models.Product, error)
	ListSoldOut(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	UpdatePhoto(ctx context.Context, id int64, photo string) error
	Delete(ctx context.Context, id int64) error
	RecordSale(ctx context.Context, id int64, units int) error
}

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordDigest, role string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
