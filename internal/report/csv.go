// Package report produces CSV snapshots and the paginated PDF stock report.
package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"inventoryManagement/models"
	"inventoryManagement/repository"
)

// csvHeader mirrors the store column names so exports can be re-imported and
// round-trip with files produced by earlier versions of the system.
var csvHeader = []string{
	"id", "nome", "preco", "quantidade", "marca", "estilo", "tipo",
	"foto", "data_validade", "vendido", "data_ultima_venda",
}

// ExportCSV writes one row per product, header first, ordered by name. When
// the catalog is empty no file is written and (false, nil) is returned;
// callers must report that case rather than claiming success.
func ExportCSV(ctx context.Context, products repository.ProductRepositoryI, path string) (bool, error) {
	list, err := products.List(ctx)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return false, err
	}
	for _, p := range list {
		sold := "0"
		if p.Sold {
			sold = "1"
		}
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.Quantity),
			p.Brand,
			p.Style,
			p.Type,
			deref(p.Photo),
			deref(p.ExpirationDate),
			sold,
			deref(p.LastSaleAt),
		}
		if err := w.Write(row); err != nil {
			return false, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, err
	}
	return true, nil
}

// ImportCSV reads product rows and inserts them as brand-new products,
// ignoring any id column. A row whose preco, quantidade or vendido field does
// not parse is skipped entirely. Returns how many rows were imported and how
// many were skipped.
func ImportCSV(ctx context.Context, products repository.ProductRepositoryI, path string) (imported, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read csv header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, err
		}
		price, perr := strconv.ParseFloat(field(row, "preco"), 64)
		qty, qerr := strconv.Atoi(field(row, "quantidade"))
		soldStr := field(row, "vendido")
		if soldStr == "" {
			soldStr = "0"
		}
		sold, serr := strconv.Atoi(soldStr)
		if perr != nil || qerr != nil || serr != nil {
			skipped++
			continue
		}
		p := &models.Product{
			Name:           field(row, "nome"),
			Price:          price,
			Quantity:       qty,
			Brand:          field(row, "marca"),
			Style:          field(row, "estilo"),
			Type:           field(row, "tipo"),
			Photo:          optional(field(row, "foto")),
			ExpirationDate: optional(field(row, "data_validade")),
			Sold:           sold != 0,
			LastSaleAt:     optional(field(row, "data_ultima_venda")),
		}
		if _, err := products.Create(ctx, p); err != nil {
			return imported, skipped, err
		}
		imported++
	}
	return imported, skipped, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
