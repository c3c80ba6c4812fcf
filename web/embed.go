package web

import "embed"

// TemplatesFS holds the server-rendered pages and partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet and the chart bootstrap script.
//
//go:embed static/*
var StaticFS embed.FS
