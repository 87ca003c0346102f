package query

/*
	Package `query` wraps https://github.com/mongodb/mongo-go-driver behind
	table oriented helpers. Read the testcases for usage of each method.
*/

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/auctionapi/base/ctx"
	"github.com/x-xyz/auctionapi/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = fmt.Errorf("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = fmt.Errorf("duplicate key")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany patches every matched document instead of the first one
func WithPatchMany(patchMany bool) PatchOp {
	return func(o *patchOp) {
		o.patchMany = patchMany
	}
}

// Index describes one index of a table
type Index struct {
	// Keys in order, prefix a key with '-' for descending
	Keys   []string
	Unique bool
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert inserts a new document to the table
	Insert(c ctx.Ctx, table domain.Table, insert interface{}) error

	// FindOne get data from the table
	FindOne(c ctx.Ctx, table domain.Table, query, result interface{}) error

	// Upsert replaces the document matching selector, inserting it when missing
	Upsert(c ctx.Ctx, table domain.Table, selector, update interface{}) error

	// Search sorts by `sorts` (ex "timestamp" ascending, or "-timestamp" descending).
	// limit 0 means no limit.
	Search(c ctx.Ctx, table domain.Table, offset, limit int, sorts []string, query, results interface{}) error

	// ScanRaw calls fn with every document of the table undecoded, stopping at the first error fn returns
	ScanRaw(c ctx.Ctx, table domain.Table, query interface{}, fn func(raw bson.Raw) error) error

	// Remove remove an entry from the table
	// Return ErrNotFound if selector does not match any documents
	Remove(c ctx.Ctx, table domain.Table, selector interface{}) error

	// RemoveAll remove all entries matching the selector from the table
	RemoveAll(c ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch $set the fields of update on matched documents.
	// Return ErrNotFound if selector does not match any documents
	Patch(c ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// EnsureIndexes creates missing indexes of the table
	EnsureIndexes(c ctx.Ctx, table domain.Table, indexes []Index) error
}
