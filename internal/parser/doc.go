// Package parser turns a rendered calendar page into raw row records
// and flattens expandable detail panels.
//
// The page is traversed through the Node contract rather than a
// concrete DOM type, so the row parser and detail resolver only depend
// on {text, attributes, find}. The production implementation wraps a
// goquery document; tests build nodes from HTML fragments the same way.
//
// Row order in the output equals document order on the page. Date
// headers appear on dedicated day-breaker rows and are attached to the
// first following event row; later rows of the same day carry an empty
// header, which downstream normalization resolves by carry-forward.
package parser
