package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/nodecanvas/internal/config"
	"github.com/specialistvlad/nodecanvas/internal/ctxlog"
	"github.com/specialistvlad/nodecanvas/internal/fsutil"
	"github.com/specialistvlad/nodecanvas/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their blocks into
// one model. Files are read in lexical order within each directory, so
// templates, groups and nodes keep a stable declaration order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	var canvasFile string

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.File
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if root.Canvas != nil {
			if canvasFile != "" {
				return nil, fmt.Errorf("duplicate canvas block in %s, already defined in %s", file, canvasFile)
			}
			canvasFile = file
			applyCanvas(&model.Settings, root.Canvas)
		}
		for _, t := range root.Templates {
			def, err := translateTemplate(ctx, t)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Templates = append(model.Templates, def)
		}
		for _, g := range root.Groups {
			model.Groups = append(model.Groups, translateGroup(g))
		}
		for _, n := range root.Nodes {
			def, err := translateNode(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Nodes = append(model.Nodes, def)
		}
	}

	logger.Debug("HCL loading complete.",
		"templates", len(model.Templates),
		"groups", len(model.Groups),
		"nodes", len(model.Nodes),
	)
	return model, nil
}
