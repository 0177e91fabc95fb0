package content

import (
	"fmt"

	"github.com/daniilsolovey/taltos-portal/internal/db"
)

// PublicIDKey is the key under which callers see a document's identifier.
const PublicIDKey = "id"

// PublicDocument replaces the storage-internal identifier of doc with its public
// string form and returns doc (modified in place).
//
// A document without the internal key keeps an existing string id and otherwise
// gets an empty one, so translating twice changes nothing.
func PublicDocument(doc db.Document) db.Document {
	if doc == nil {
		return nil
	}

	raw, ok := doc[db.IDKey]
	if !ok {
		if _, translated := doc[PublicIDKey].(string); !translated {
			doc[PublicIDKey] = ""
		}
		return doc
	}

	delete(doc, db.IDKey)
	doc[PublicIDKey] = idString(raw)

	return doc
}

// PublicDocuments translates every document of docs.
func PublicDocuments(docs []db.Document) []db.Document {
	for i := range docs {
		docs[i] = PublicDocument(docs[i])
	}
	return docs
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case interface{ Hex() string }:
		return id.Hex()
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}
