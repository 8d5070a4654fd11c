package testutil

// PipelineHCL is a small canvas: a unique source feeding filters. The source
// (100x50) sits at (0,0) and the filter (100x60) at (300,0), already
// connected.
const PipelineHCL = `
canvas {
  snap_to_grid = false
  grid_size    = 10
}

node_template "source" {
  name          = "Source"
  max_instances = 1
  can_delete    = false
  default_width  = 100
  default_height = 50

  slot "out" {
    name            = "Out"
    side            = "right"
    allowed_targets = ["Filter"]
    max_connections = 2
  }
}

node_template "filter" {
  name           = "Filter"
  default_width  = 100
  default_height = 60

  slot "next" {
    name            = "Next"
    side            = "bottom"
    allowed_targets = ["Filter"]
    min_connections = 1
  }

  field "enabled" {
    type    = bool
    default = true
  }

  field "threshold" {
    name    = "Threshold"
    type    = number
    default = 3
  }

  field "label" {
    type = string
  }
}

template_group "basic" {
  name      = "Basic"
  templates = ["Filter", "source"]
}

node "src" {
  template = "Source"
  x = 0
  y = 0

  connection {
    slot   = "out"
    target = "f1"
  }
}

node "f1" {
  template = "filter"
  x = 300
  y = 0
  fields = {
    threshold = 7
    label     = "first"
  }
}
`
