package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"btdb/row"
)

// StatementType discriminates the two statements this REPL understands.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed, validated form of a command line ready for
// execution against the tree.
type Statement struct {
	Type        StatementType
	RowToInsert row.Row
}

// PrepareResult is the tagged outcome of parsing one input line.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareSyntaxError
	PrepareNegativeID
	PrepareStringTooLong
	PrepareUnrecognizedStatement
)

// PrepareStatement parses input into stmt. Validation of id sign and
// field lengths happens here, before any row reaches the tree: the
// codec itself assumes well-formed input.
func PrepareStatement(input string, stmt *Statement) PrepareResult {
	if strings.HasPrefix(input, "insert") {
		return prepareInsert(input, stmt)
	}
	if input == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess
	}
	return PrepareUnrecognizedStatement
}

func prepareInsert(input string, stmt *Statement) PrepareResult {
	stmt.Type = StatementInsert

	fields := strings.Fields(input)
	if len(fields) != 4 {
		return PrepareSyntaxError
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}
	if id > math.MaxUint32 {
		return PrepareSyntaxError
	}

	r := row.Row{ID: uint32(id), Username: fields[2], Email: fields[3]}
	if err := r.Validate(); err != nil {
		return PrepareStringTooLong
	}

	stmt.RowToInsert = r
	return PrepareSuccess
}

// prepareErrorMessage renders the verbatim diagnostic for a non-success
// PrepareResult. Callers must not call this with PrepareSuccess.
func prepareErrorMessage(result PrepareResult) string {
	switch result {
	case PrepareSyntaxError:
		return "Syntax error. Could not parse statement."
	case PrepareNegativeID:
		return "ID must be positive."
	case PrepareStringTooLong:
		return "String is too long."
	default:
		return fmt.Sprintf("Unknown prepare error: %d", result)
	}
}
