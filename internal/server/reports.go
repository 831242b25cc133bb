package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"inventoryManagement/internal/report"
)

// exportCSV writes the catalog snapshot under the data directory. An empty
// catalog writes no file, and the reply says so instead of claiming success.
func (s *Server) exportCSV(c *gin.Context) {
	if err := os.MkdirAll(s.cfg.Storage.DataDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "data dir: " + err.Error()})
		return
	}
	path := filepath.Join(s.cfg.Storage.DataDir, "produtos_export.csv")
	written, err := report.ExportCSV(c.Request.Context(), s.products, path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export csv: " + err.Error()})
		return
	}
	if !written {
		c.JSON(http.StatusOK, gin.H{"message": "no products to export"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

func (s *Server) stockReport(c *gin.Context) {
	if err := os.MkdirAll(s.cfg.Storage.DataDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "data dir: " + err.Error()})
		return
	}
	path := filepath.Join(s.cfg.Storage.DataDir, "relatorio_estoque.pdf")
	written, err := report.WriteStockPDF(c.Request.Context(), s.products, path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stock report: " + err.Error()})
		return
	}
	if !written {
		c.JSON(http.StatusOK, gin.H{"message": "no products to report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}
