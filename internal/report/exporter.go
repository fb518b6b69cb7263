package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/wuasibox/box-register/internal/apperr"
	"github.com/wuasibox/box-register/internal/model"
	"github.com/wuasibox/box-register/internal/storage/file"
)

const fileStampLayout = "20060102_150405"

// Exporter writes one timestamped CSV report per call into a directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

func NewExporter(dir string, logger *slog.Logger) *Exporter {
	return &Exporter{
		dir:    dir,
		logger: logger.With(slog.String("component", "report")),
	}
}

// FileName returns the report file name for an export made at.
func FileName(at time.Time) string {
	return fmt.Sprintf("inventory_report_%s.csv", at.Format(fileStampLayout))
}

// Export renders products into <dir>/inventory_report_<stamp>.csv and
// returns the path written.
func (e *Exporter) Export(ctx context.Context, products []model.Product, at time.Time) (string, error) {
	if len(products) == 0 {
		return "", apperr.EmptyCatalogErr
	}

	path := filepath.Join(e.dir, FileName(at))
	if err := file.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Render(w, products, at)
	}); err != nil {
		return "", apperr.PersistenceErr.
			WithMsg("report could not be written").
			WrapParent(fmt.Errorf("export report %s: %w", path, err))
	}

	e.logger.InfoContext(ctx, "report exported",
		slog.String("path", path), slog.Int("products", len(products)))

	return path, nil
}
