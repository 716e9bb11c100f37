//go:build js && wasm

// Command wasm is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes the following functions on the JavaScript global object:
//
//	tblParse(source)                      → programJSON   (throws on error)
//	tblTokenize(source)                   → tokensJSON    (throws on error)
//	tblValidate(source)                   → findingsJSON
//	tblGenerate(source, table, count [, seed]) → string   (throws on error)
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gotbl.wasm ./cmd/wasm/
//
// Usage:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go()
//	  WebAssembly.instantiateStreaming(fetch("gotbl.wasm"), go.importObject)
//	    .then(r => { go.run(r.instance)
//	      console.log(tblGenerate("#t[export]\n1.0: hi\n", "t", 1))
//	    })
//	</script>
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"syscall/js"

	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/lexer"
	"github.com/yaklabco/gotbl/pkg/parser"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	js.Global().Get("Error").New(msg)
	panic(msg)
}

// throwRendered throws err, rendering the full caret diagnostic when one
// is attached.
func throwRendered(prefix string, err error) {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) && parseErr.Diagnostic != nil {
		jsThrow(diag.NewFormatter().Format(parseErr.Diagnostic))
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) && lexErr.Diagnostic != nil {
		jsThrow(diag.NewFormatter().Format(lexErr.Diagnostic))
	}
	jsThrow(fmt.Sprintf("%s: %v", prefix, err))
}

// jsParse implements tblParse(source) → programJSON.
func jsParse(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		jsThrow("tblParse requires 1 argument: source (string)")
	}
	source := args[0].String()

	program, err := parser.Parse(source)
	if err != nil {
		throwRendered("tblParse", err)
	}

	out, err := json.Marshal(program)
	if err != nil {
		jsThrow(fmt.Sprintf("tblParse: marshal program: %v", err))
	}
	return string(out)
}

// jsTokenize implements tblTokenize(source) → tokensJSON.
func jsTokenize(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		jsThrow("tblTokenize requires 1 argument: source (string)")
	}
	source := args[0].String()

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		throwRendered("tblTokenize", err)
	}

	out, err := json.Marshal(tokens)
	if err != nil {
		jsThrow(fmt.Sprintf("tblTokenize: marshal tokens: %v", err))
	}
	return string(out)
}

// jsValidate implements tblValidate(source) → findingsJSON. Construction
// problems surface as findings of the construct check, so a broken source
// returns findings rather than throwing.
func jsValidate(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		jsThrow("tblValidate requires 1 argument: source (string)")
	}
	source := args[0].String()

	engine := check.NewEngine(nil)
	result, err := engine.CheckSource(context.Background(), "input.tbl", source)
	if err != nil {
		jsThrow(fmt.Sprintf("tblValidate: %v", err))
	}

	findings := result.Findings
	if findings == nil {
		findings = []check.Finding{}
	}
	out, err := json.Marshal(findings)
	if err != nil {
		jsThrow(fmt.Sprintf("tblValidate: marshal findings: %v", err))
	}
	return string(out)
}

// jsGenerate implements tblGenerate(source, table, count [, seed]) → string.
func jsGenerate(_ js.Value, args []js.Value) any {
	if len(args) < 3 {
		jsThrow("tblGenerate requires 3 arguments: source (string), table (string), count (number)")
	}
	source := args[0].String()
	tableID := args[1].String()
	count := args[2].Int()
	if count < 1 {
		jsThrow("tblGenerate: count must be at least 1")
	}

	var coll *collection.Collection
	var err error
	if len(args) > 3 {
		coll, err = collection.NewSeeded(source, uint64(args[3].Int()))
	} else {
		coll, err = collection.New(source)
	}
	if err != nil {
		throwRendered("tblGenerate", err)
	}

	result, err := coll.Generate(tableID, count)
	if err != nil {
		jsThrow(fmt.Sprintf("tblGenerate: %v", err))
	}
	return result
}

func main() {
	js.Global().Set("tblParse", js.FuncOf(jsParse))
	js.Global().Set("tblTokenize", js.FuncOf(jsTokenize))
	js.Global().Set("tblValidate", js.FuncOf(jsValidate))
	js.Global().Set("tblGenerate", js.FuncOf(jsGenerate))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
