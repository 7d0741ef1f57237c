package domain

// Document represents a schema-less JSON object stored in a collection.
// Numbers are held as json.Number so their literal text survives a
// load/dump cycle unchanged.
type Document map[string]interface{}
