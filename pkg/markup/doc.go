// Package markup sanitizes user supplied HTML with bluemonday and renders
// markdown to safe HTML with goldmark.
//
// Used by the sanitize_html and render_markdown utilities, for example to
// render project descriptions.
package markup
