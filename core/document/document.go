// Package document runs the transform and capture extractors over one
// exported level at a time.
package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/adalundhe/layerkit/core/capture"
	"github.com/adalundhe/layerkit/core/component"
	"github.com/adalundhe/layerkit/core/config"
	"github.com/adalundhe/layerkit/core/export"
	"github.com/adalundhe/layerkit/core/naming"
	"github.com/adalundhe/layerkit/core/transform"
)

// Document owns every per-document structure. Nothing in it is shared with
// other documents.
type Document struct {
	ID     string
	Source string

	Export   *export.Export
	Registry *component.Registry
	Resolver *transform.Resolver

	// Topology is nil when the export has no layer-wide graph.
	Topology *capture.Topology
	// Lanes holds one topology per lane of a lane-based layer.
	Lanes []*capture.Topology
	// TeamMains maps the first and last main display names to team labels.
	TeamMains map[string]string
}

// Build indexes exp and extracts its capture topology. A structural graph
// error aborts the document.
func Build(ctx context.Context, exp *export.Export, source string, cfg *config.Config, logger *slog.Logger) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	doc := &Document{
		ID:     uuid.New().String(),
		Source: source,
		Export: exp,
	}
	logger = logger.With(slog.String("document_id", doc.ID), slog.String("source", source))

	doc.Registry = component.Build(exp.Components, logger)
	doc.Resolver = transform.NewResolver(doc.Registry, transform.Config{
		CacheSize:      cfg.Resolver.CacheSize,
		RootComponents: cfg.Actors.RootComponents,
	}, logger)

	extractor := capture.NewExtractor(capture.Config{Separator: cfg.Graph.PathSeparator}, logger)

	if exp.HasGraph() {
		t, err := extractor.Extract(exp.Links)
		if err != nil {
			return nil, fmt.Errorf("capture graph: %w", err)
		}
		doc.Topology = t
		doc.TeamMains = naming.TeamAliases(t.Mains, cfg.Naming.AttackMain, cfg.Naming.DefenseMain)
	}

	if exp.HasLanes() {
		lanes, err := extractor.ExtractLanes(exp.Lanes)
		if err != nil {
			return nil, fmt.Errorf("capture lanes: %w", err)
		}
		doc.Lanes = lanes
	}

	logger.Info("document built",
		slog.Int("components", doc.Registry.Len()),
		slog.Bool("graph", doc.Topology != nil),
		slog.Int("lanes", len(doc.Lanes)))
	return doc, nil
}

// Load reads and builds the export at path.
func Load(ctx context.Context, path string, cfg *config.Config, logger *slog.Logger) (*Document, error) {
	exp, err := export.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, exp, path, cfg, logger)
}

// IsStructural reports whether err comes from a violated graph-shape invariant
// rather than from reading the document.
func IsStructural(err error) bool {
	return errors.Is(err, capture.ErrAmbiguousStart) ||
		errors.Is(err, capture.ErrAmbiguousEnd) ||
		errors.Is(err, capture.ErrNoPath)
}
