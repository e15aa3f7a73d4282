package postgres

// FilterClause открывает filterClause для тестов.
var FilterClause = filterClause
