// Package web embeds the HTML templates so the binary and the tests
// render the same assets regardless of working directory.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS

//go:embed static/*
var Static embed.FS
