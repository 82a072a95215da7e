package sqlstore

import "github.com/jinzhu/inflection"

// tableName derives a SQL table name from the document-store's logical,
// singular collection name, the way MongoDBInterface.java names its own
// collections off of the record kind it holds (tf, logged_designator).
// Pluralizing programmatically rather than hardcoding both forms keeps
// the singular model name and the table name from drifting apart as
// fields are renamed.
func tableName(singular string) string {
	return inflection.Plural(singular)
}
