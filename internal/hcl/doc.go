// Package hcl provides the HCL implementation of the config.Loader interface.
// It parses `jsonui.hcl`, decodes it through the schema package and
// translates the result into the format-agnostic config.Model.
package hcl
