package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"btdb/btree"
	"btdb/pager"
	"btdb/row"
)

// ExecuteResult is the tagged outcome of running a prepared statement
// against the tree.
type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteDuplicateKey
	ExecuteTableFull
)

func executeInsert(stmt *Statement, tree *btree.Tree) ExecuteResult {
	err := tree.Insert(stmt.RowToInsert.ID, stmt.RowToInsert)
	switch {
	case err == nil:
		return ExecuteSuccess
	case errors.Is(err, btree.ErrDuplicateKey):
		return ExecuteDuplicateKey
	case errors.Is(err, btree.ErrTableFull):
		return ExecuteTableFull
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
		return ExecuteSuccess
	}
}

func executeSelect(tree *btree.Tree) ExecuteResult {
	c := tree.TableStart()
	for !c.EndOfTable {
		r := row.Deserialize(c.Value())
		fmt.Printf("(%d, %s, %s)\n", r.ID, r.Username, r.Email)
		c.Advance()
	}
	return ExecuteSuccess
}

func executeStatement(stmt *Statement, tree *btree.Tree) ExecuteResult {
	switch stmt.Type {
	case StatementInsert:
		return executeInsert(stmt, tree)
	case StatementSelect:
		return executeSelect(tree)
	default:
		return ExecuteSuccess
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Must supply a database filename.")
		os.Exit(1)
	}

	db, err := pager.Open(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tree := btree.Open(db)

	reader := bufio.NewReader(os.Stdin)
	for {
		printPrompt()
		line, err := readInput(reader)
		if err == io.EOF {
			os.Exit(0)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if line == "" {
			continue
		}

		if line[0] == '.' {
			switch doMetaCommand(line, db, tree) {
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognizedCommand:
				fmt.Printf("Unrecognized command '%s'\n", line)
				continue
			}
		}

		var stmt Statement
		switch result := PrepareStatement(line, &stmt); result {
		case PrepareSuccess:
			// fall through to execution below
		case PrepareUnrecognizedStatement:
			fmt.Printf("Unrecognized keyword at start of '%s'\n", line)
			continue
		default:
			fmt.Println(prepareErrorMessage(result))
			continue
		}

		switch executeStatement(&stmt, tree) {
		case ExecuteSuccess:
			fmt.Println("Executed.")
		case ExecuteDuplicateKey:
			fmt.Println("Error: Duplicate key.")
		case ExecuteTableFull:
			fmt.Println("Error: Table full.")
		}
	}
}
