package main

import (
	"fmt"
	"os"
	"strings"

	"btdb/btree"
	"btdb/pager"
)

// MetaCommandResult is the tagged outcome of a "." command.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
)

// doMetaCommand handles every line starting with ".". ".exit" flushes
// and terminates the process directly, matching the REPL's only clean
// shutdown path; everything else returns a tagged result for the
// caller to report.
func doMetaCommand(line string, db *pager.Pager, tree *btree.Tree) MetaCommandResult {
	switch strings.TrimSpace(line) {
	case ".exit":
		if err := db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
		return MetaCommandSuccess
	case ".constants":
		fmt.Println("Constants:")
		btree.PrintConstants(os.Stdout)
		return MetaCommandSuccess
	case ".btree":
		fmt.Println("Tree:")
		btree.PrintTree(os.Stdout, db, btree.RootPageNum, 0)
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}
