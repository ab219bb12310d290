package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
// Any other top-level block or attribute is a decode error.
type fileRoot struct {
	Systems []*systemBlock `hcl:"system,block"`
}

// systemBlock represents a `system` block.
type systemBlock struct {
	Name       string            `hcl:"name,label"`
	Parameters *attributesBlock  `hcl:"parameters,block"`
	Components []*componentBlock `hcl:"component,block"`
}

// attributesBlock holds a block whose content is free-form attributes.
type attributesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// componentBlock represents a `component` block inside a system.
type componentBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}
