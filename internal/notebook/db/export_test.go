package db

// SourceURL открывает sourceURL для тестов.
var SourceURL = sourceURL
