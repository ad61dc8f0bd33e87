// Package logger provides adapters for popular logger libraries to work with bptree's Logger interface.
//
// The adapters allow you to use your existing logger with bptree without writing boilerplate.
// Note that the standard library's slog.Logger already implements bptree.Logger directly.
//
// Example with zap:
//
//	import (
//	    "github.com/kerns-huang/bptree"
//	    "github.com/kerns-huang/bptree/logger"
//	    "go.uber.org/zap"
//	)
//
//	func main() {
//	    zapLogger, _ := zap.NewProduction()
//
//	    tree, err := bptree.NewOrdered[int, string](32,
//	        bptree.WithLogger(logger.NewZap(zapLogger)),
//	    )
//	    if err != nil {
//	        panic(err)
//	    }
//	    tree.Insert(1, "one")
//	}
package logger
