// Package hanscan extracts user-facing literals written in a non-Latin
// script from source trees so they can be moved into a translation table.
//
// Each top-level folder is a scope. Literals are found by a line-oriented
// state machine, filtered against logging and exception call patterns,
// normalized so that {expr} placeholders become {0}, {1}, ... and
// deduplicated per scope. Every unique literal then receives a symbolic key,
// either from a key-suggestion provider or from a local character table.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/hanscan"
//	    "github.com/ZaguanLabs/hanscan/cache"
//	    "github.com/ZaguanLabs/hanscan/scanner"
//	)
//
//	func main() {
//	    c := cache.NewInMemoryCache(0)
//	    assigner := hanscan.NewKeyAssigner(hanscan.ScriptHan, hanscan.WithCache(c))
//
//	    ex := hanscan.NewExtractor(scanner.New(hanscan.ScriptHan),
//	        hanscan.WithKeyAssigner(assigner),
//	    )
//
//	    res, err := ex.ExtractScope(context.Background(), "Function/Battle", "Battle")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, row := range res.Rows {
//	        fmt.Println(row.Key, row.Value, row.Pos)
//	    }
//	}
package hanscan
