// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Document struct {
		ID, Collection, Data, CreatedAt string
	}
}{
	Document: struct {
		ID, Collection, Data, CreatedAt string
	}{
		ID:         "documentId",
		Collection: "collection",
		Data:       "data",
		CreatedAt:  "createdAt",
	},
}

var Tables = struct {
	Document struct {
		Name, Alias string
	}
}{
	Document: struct {
		Name, Alias string
	}{
		Name:  "documents",
		Alias: "t",
	},
}

type DocumentRow struct {
	tableName struct{} `pg:"documents,alias:t,discard_unknown_columns"`

	ID         string         `pg:"documentId,pk"`
	Collection string         `pg:"collection,use_zero"`
	Data       map[string]any `pg:"data,type:jsonb,use_zero"`
	CreatedAt  time.Time      `pg:"createdAt,use_zero"`
}

// document flattens the row into the shape every backend returns.
func (r *DocumentRow) document() Document {
	doc := make(Document, len(r.Data)+1)
	for k, v := range r.Data {
		doc[k] = v
	}
	doc[IDKey] = r.ID
	return doc
}
