package models

// Roles recognized by the application.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Product represents a catalog item. It maps to the `produtos` table in SQLite;
// column names stay in Portuguese for compatibility with pre-existing databases
// and CSV exports.
type Product struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"nome" json:"name"`
	Price    float64 `db:"preco" json:"price"`
	Quantity int     `db:"quantidade" json:"quantity"`
	Brand    string  `db:"marca" json:"brand"`
	Style    string  `db:"estilo" json:"style"`
	Type     string  `db:"tipo" json:"type"`
	// Photo holds the filename of an uploaded image under the assets
	// directory. Nullable in DB; use a pointer to distinguish null vs empty.
	Photo *string `db:"foto" json:"photo,omitempty"`
	// ExpirationDate is an ISO-8601 calendar date (YYYY-MM-DD) or absent.
	ExpirationDate *string `db:"data_validade" json:"expiration_date,omitempty"`
	// Sold flips to true on the first sale and never reverts.
	Sold bool `db:"vendido" json:"sold"`
	// LastSaleAt is an ISO-8601 timestamp, overwritten on each sale.
	LastSaleAt *string `db:"data_ultima_venda" json:"last_sale_at,omitempty"`
}

// InStock reports whether at least one unit remains.
func (p *Product) InStock() bool {
	return p.Quantity > 0
}
