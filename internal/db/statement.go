package db

import (
	"strings"
)

// QuoteIdentifier wraps name in backticks, doubling any embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// CSVLoadStatement loads a comma-separated file with "-quoted fields and a
// header row into table. The file path is the statement's only placeholder.
func CSVLoadStatement(table string) string {
	return "LOAD DATA LOCAL INFILE ? INTO TABLE " + QuoteIdentifier(table) +
		` FIELDS TERMINATED BY ',' ENCLOSED BY '"' LINES TERMINATED BY '\n' IGNORE 1 ROWS`
}

// ColumnLoadStatement loads a headerless file of one value per line into a
// single column of table. The file path is the statement's only placeholder.
func ColumnLoadStatement(table, column string) string {
	return "LOAD DATA LOCAL INFILE ? INTO TABLE " + QuoteIdentifier(table) +
		` FIELDS TERMINATED BY ',' LINES TERMINATED BY '\n' (` + QuoteIdentifier(column) + ")"
}
