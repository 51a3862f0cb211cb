// Package layout reconstructs the natural reading order of detected
// document-layout elements. Structural elements (titles, figures, tables,
// wide cross-column spans) are masked out first, the remaining flowing
// blocks are ordered by recursive projection cuts, and the masked elements
// are folded back in by a priority-constrained weighted distance.
package layout

import (
	"fmt"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

// Config holds the tunable parameters of the ordering algorithm.
type Config struct {
	// MinCutThreshold is the minimum empty-projection run, in pixels,
	// treated as a cut.
	MinCutThreshold float64 `mapstructure:"min_cut_threshold" yaml:"min_cut_threshold" json:"min_cut_threshold"`

	// HistogramResolutionScale is the number of histogram bins per pixel.
	HistogramResolutionScale float64 `mapstructure:"histogram_resolution_scale" yaml:"histogram_resolution_scale" json:"histogram_resolution_scale"`

	// SameRowTolerance is the vertical-center difference, in pixels, under
	// which two elements count as the same row.
	SameRowTolerance float64 `mapstructure:"same_row_tolerance" yaml:"same_row_tolerance" json:"same_row_tolerance"`

	// IsolationDistance is the minimum distance, in pixels, to the nearest
	// non-maskable element for the isolated-visual masking rule.
	IsolationDistance float64 `mapstructure:"isolation_distance" yaml:"isolation_distance" json:"isolation_distance"`

	// SameColumnTolerance is the left-edge difference, in pixels, under
	// which two elements count as the same column during fallback
	// insertion.
	SameColumnTolerance float64 `mapstructure:"same_column_tolerance" yaml:"same_column_tolerance" json:"same_column_tolerance"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		MinCutThreshold:          15.0,
		HistogramResolutionScale: 0.5, // 1 bin per 2 pixels
		SameRowTolerance:         10.0,
		IsolationDistance:        50.0,
		SameColumnTolerance:      100.0,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.MinCutThreshold <= 0 {
		return fmt.Errorf("min_cut_threshold must be positive, got %v", c.MinCutThreshold)
	}
	if c.HistogramResolutionScale <= 0 {
		return fmt.Errorf("histogram_resolution_scale must be positive, got %v", c.HistogramResolutionScale)
	}
	if c.SameRowTolerance < 0 {
		return fmt.Errorf("same_row_tolerance must not be negative, got %v", c.SameRowTolerance)
	}
	if c.IsolationDistance < 0 {
		return fmt.Errorf("isolation_distance must not be negative, got %v", c.IsolationDistance)
	}
	if c.SameColumnTolerance < 0 {
		return fmt.Errorf("same_column_tolerance must not be negative, got %v", c.SameColumnTolerance)
	}
	return nil
}

// Orderer computes reading orders. It is stateless across calls and safe
// for concurrent use as long as the tracer is.
type Orderer struct {
	cfg    Config
	tracer Tracer
}

// Option customizes an Orderer.
type Option func(*Orderer)

// WithTracer installs a trace observer for cut and insertion decisions.
func WithTracer(t Tracer) Option {
	return func(o *Orderer) {
		if t != nil {
			o.tracer = t
		}
	}
}

// NewOrderer creates an Orderer with the given configuration.
func NewOrderer(cfg Config, opts ...Option) *Orderer {
	o := &Orderer{cfg: cfg, tracer: NopTracer{}}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ComputeOrder returns the ids of the elements in natural reading order.
// The result is a permutation of the input ids. An invalid page rectangle
// or empty input yields an empty result, never an error.
func (o *Orderer) ComputeOrder(elements []Element, page geometry.Box) []int {
	if len(elements) == 0 || !page.Valid() {
		return nil
	}

	partition := partitionElements(elements, page, o.cfg.IsolationDistance)
	order := o.cutOrder(partition.Regular, page)
	return o.mergeMasked(order, partition.Regular, partition.Masked)
}
