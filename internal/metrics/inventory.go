// Package metrics exposes inventory figures as Prometheus metrics. There is
// no listener: the registry is dumped to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wuasibox/box-register/internal/analytics"
)

const namespace = "boxreg"

// InventoryMetrics mirrors the latest analytics.Summary and counts recorded
// actions.
type InventoryMetrics struct {
	gatherer prometheus.Gatherer

	products       prometheus.Gauge
	inventoryValue prometheus.Gauge
	lowStock       prometheus.Gauge
	outOfStock     prometheus.Gauge
	averageMargin  prometheus.Gauge
	categories     *prometheus.GaugeVec
	actions        *prometheus.CounterVec
}

// NewInventoryMetrics registers the inventory metrics on reg. A nil reg
// yields a no-op recorder.
func NewInventoryMetrics(reg *prometheus.Registry) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}

	m := &InventoryMetrics{
		gatherer: reg,
		products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "products_total",
			Help:      "Number of products in the catalog.",
		}),
		inventoryValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_value",
			Help:      "Sum of purchase price times stock over the catalog.",
		}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_products",
			Help:      "Products at or below their minimum stock.",
		}),
		outOfStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "out_of_stock_products",
			Help:      "Products with zero stock.",
		}),
		averageMargin: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "average_margin_percent",
			Help:      "Mean margin percentage over products with a purchase price.",
		}),
		categories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "category_products",
			Help:      "Number of products per category.",
		}, []string{"category"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Operator actions recorded in the action log.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		m.products,
		m.inventoryValue,
		m.lowStock,
		m.outOfStock,
		m.averageMargin,
		m.categories,
		m.actions,
	)

	return m
}

// Observe replaces the gauges with the figures of s.
func (m *InventoryMetrics) Observe(s analytics.Summary) {
	if m == nil || m.gatherer == nil {
		return
	}

	m.products.Set(float64(s.ProductCount))
	m.inventoryValue.Set(s.TotalInventoryValue.InexactFloat64())
	m.lowStock.Set(float64(s.LowStockCount))
	m.outOfStock.Set(float64(s.OutOfStockCount))
	m.averageMargin.Set(s.AverageMarginPercent.InexactFloat64())

	m.categories.Reset()
	for _, share := range s.Categories {
		m.categories.WithLabelValues(share.Category.String()).Set(float64(share.Count))
	}
}

// IncAction counts one recorded action.
func (m *InventoryMetrics) IncAction(action string) {
	if m == nil || m.actions == nil {
		return
	}
	m.actions.WithLabelValues(normalizeLabel(action)).Inc()
}

// WriteTextfile dumps the registry to path in the text exposition format.
// An empty path disables the dump.
func (m *InventoryMetrics) WriteTextfile(path string) error {
	if m == nil || m.gatherer == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func normalizeLabel(action string) string {
	if action == "" {
		return "unknown"
	}
	return action
}
