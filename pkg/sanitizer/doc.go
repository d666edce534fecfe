// Package sanitizer neutralizes user supplied text before it is normalized or stored.
//
// All functions are idempotent - applying them multiple times produces the same
// result - and never fail: unusable input collapses to an empty string.
//
// Cleaning includes:
//   - Unicode: NFC normalization, exotic spaces (NBSP, ideographic space, zero width
//     characters, BOM) replaced by an ASCII space, control characters dropped
//   - Zalgo text: runs of combining marks collapsed to at most two marks
//   - Markup: tags stripped with a strict policy, entities decoded
//   - Whitespace: Clean flattens newlines and trims; CleanKeepNewlines keeps
//     line breaks and only trims spaces and tabs
package sanitizer
