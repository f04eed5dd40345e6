// Package render turns analysis results into output through an injected
// writer. Renderers hold no global state; a plotting front end implements
// Renderer the same way TableRenderer and CSVRenderer do.
package render
