// Package components renders the homepage features section as templ
// components.
//
// A Renderer maps one features.Descriptor to one card (Feature) and an
// ordered features.List to the section markup (Section). HomepageFeatures
// is the section for the authored list, ready to be placed on a page.
// Rendering is pure and never fails on descriptor content: a missing icon
// leaves the icon region empty and empty text renders empty elements. Only
// writer errors are returned.
package components
