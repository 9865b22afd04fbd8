// Package module implements the module-architecture query language.
//
// A module is a biosynthetic assembly-line unit whose protein domains are
// grouped into six sections. A module query constrains each section:
//
//	S=PKS_KS|L=PKS_AT|M=PKS_DH+PKS_KR,PKS_ER+PKS_KR|T=PP-binding
//
// Within a section's content:
//
//   - ","  separates alternatives (OR)
//   - "+"  requires both labels (AND, order-independent)
//   - ">"  requires the left label at or before the right label (THEN)
//   - "*"  matches anything (the default for an absent section)
//   - "?"  matches when the section has at least one domain
//   - "0"  matches when the section has no domains
//
// Parse validates the query completely before any matching can happen:
// combinations that are always false or that make a wildcard meaningless
// (such as "+0" or ",*") are rejected, and so is a query where every section
// is unconstrained.
package module
