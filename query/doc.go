// Package query parses BGC search queries into an expression tree.
//
// Free text:
//
//	[type]lanthipeptide [genus]Streptomyces
//	ripp AND ( streptomyces OR lactococcus )
//	2 * [monomer]ala EXCEPT [genus]Amycolatopsis
//	[knowncluster]BGC0000535 WITH [similarity](> 50)
//	[length:>=]40000
//
// Grammar, right-leaning:
//
//	term       → primary ( keyword term | term )?
//	primary    → '(' term ')' | expression
//	expression → count? ( '[' category (':' op)? ']' word | word ) filter*
//	count      → number '*'
//	filter     → 'WITH' '[' name ']' '(' op? value ')'
//	keyword    → AND | OR | EXCEPT   (case-insensitive)
//
// So "A AND B OR C" groups as and(A, or(B, C)) and juxtaposition means AND.
// Unqualified words have category "unknown".
//
// The same tree has a JSON form:
//
//	{"term_type": "expr", "category": "genus", "term": "Streptomyces"}
//	{"term_type": "op", "operation": "and", "left": {...}, "right": {...}}
package query
