package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"inventoryManagement/models"
)

const productColumns = `id, nome, preco, quantidade, marca, estilo, tipo, foto, data_validade, vendido, data_ultima_venda`

type ProductRepository struct {
	db *sql.DB
	// assetsDir is where uploaded product photos live; Delete cascades to it.
	assetsDir string
}

func NewProductRepository(db *sql.DB, assetsDir string) *ProductRepository {
	if assetsDir == "" {
		assetsDir = "assets"
	}
	return &ProductRepository{db: db, assetsDir: assetsDir}
}

// AssetsDir returns the directory holding uploaded product photos.
func (r *ProductRepository) AssetsDir() string { return r.assetsDir }

// Create inserts a new product row and returns it with the generated ID.
// Sold and LastSaleAt are persisted as given so that CSV import can carry
// historical rows over.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p == nil {
		return nil, errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	sold := 0
	if p.Sold {
		sold = 1
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO produtos (nome, preco, quantidade, marca, estilo, tipo, foto, data_validade, vendido, data_ultima_venda) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		p.Name, p.Price, p.Quantity, p.Brand, p.Style, p.Type, nullable(p.Photo), nullable(p.ExpirationDate), sold, nullable(p.LastSaleAt))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// List returns all products ordered by name ascending.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM produtos ORDER BY nome ASC`)
}

// ListByBrand returns products with an exact brand match, ordered by name.
func (r *ProductRepository) ListByBrand(ctx context.Context, brand string) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM produtos WHERE marca = ? ORDER BY nome ASC`, brand)
}

// ListSoldOut returns products that have sold at least once and have no
// stock left.
func (r *ProductRepository) ListSoldOut(ctx context.Context) ([]models.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM produtos WHERE vendido = 1 AND quantidade = 0 ORDER BY nome ASC`)
}

// Update performs a full replacement of all mutable fields. Callers must
// re-supply values they want to keep (e.g. the previous photo filename when
// no new upload happened); omitted fields are blanked.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	if p == nil {
		return errors.New("product is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`UPDATE produtos SET nome=?, preco=?, quantidade=?, marca=?, estilo=?, tipo=?, foto=?, data_validade=? WHERE id=?`,
		p.Name, p.Price, p.Quantity, p.Brand, p.Style, p.Type, nullable(p.Photo), nullable(p.ExpirationDate), p.ID)
	return err
}

// UpdatePhoto sets the photo filename for the given product.
func (r *ProductRepository) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, `UPDATE produtos SET foto = ? WHERE id = ?`, photo, id)
	return err
}

// Delete removes the row and the referenced photo file, if any. A missing
// file is ignored so the operation stays idempotent with respect to the
// filesystem.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if _, err := r.db.ExecContext(ctx, `DELETE FROM produtos WHERE id = ?`, id); err != nil {
		return err
	}
	if p != nil && p.Photo != nil && *p.Photo != "" {
		if err := os.Remove(filepath.Join(r.assetsDir, *p.Photo)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// RecordSale decrements the quantity by units, marks the product as sold and
// stamps the sale time. The decrement is conditional on sufficient stock;
// ErrInsufficientStock is returned when the guard fails and ErrProductNotFound
// when the id does not exist.
func (r *ProductRepository) RecordSale(ctx context.Context, id int64, units int) error {
	if units <= 0 {
		return errors.New("units must be positive")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx,
		`UPDATE produtos SET quantidade = quantidade - ?, vendido = 1, data_ultima_venda = ? WHERE id = ? AND quantidade >= ?`,
		units, now, id, units)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) query(ctx context.Context, q string, args ...any) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var photo, expiration, lastSale sql.NullString
	var sold int
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.Brand, &p.Style, &p.Type,
		&photo, &expiration, &sold, &lastSale)
	if err != nil {
		return nil, err
	}
	if photo.Valid && photo.String != "" {
		v := photo.String
		p.Photo = &v
	}
	if expiration.Valid && expiration.String != "" {
		v := expiration.String
		p.ExpirationDate = &v
	}
	if lastSale.Valid && lastSale.String != "" {
		v := lastSale.String
		p.LastSaleAt = &v
	}
	p.Sold = sold != 0
	return &p, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
