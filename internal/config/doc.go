// Package config defines the format-agnostic project configuration model and
// the Loader interface that produces it.
//
// The `config.Model` is the single source of truth for the app, the batch
// generator and the hot reload server. Concrete loaders, such as the one for
// HCL, are provided in separate packages.
package config
