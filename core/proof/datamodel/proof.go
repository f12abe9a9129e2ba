package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"
	"sync"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
)

//go:embed proof.ipldsch
var proofSchema []byte

// ProofModel is the serialized form of a mined key.
type ProofModel struct {
	Seed   string
	Key    string
	Steps  int64
	Zeroes int64
	Digest []byte
}

var (
	once sync.Once
	ts   *schema.TypeSystem
	err  error
)

func mustLoadSchema() *schema.TypeSystem {
	once.Do(func() {
		ts, err = ipld.LoadSchemaBytes(proofSchema)
	})
	if err != nil {
		panic(fmt.Errorf("failed to load IPLD schema: %s", err))
	}
	return ts
}

// returns the proof schematype
func Type() schema.Type {
	return mustLoadSchema().TypeByName("Proof")
}
