package printer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/printer"
	"github.com/storacha/go-keyminer/core/ipld"
	"github.com/storacha/go-keyminer/core/proof"
	pdm "github.com/storacha/go-keyminer/core/proof/datamodel"
)

func withIndent(t *testing.T, level int) func(format string, args ...any) {
	indent := strings.Repeat("  ", level)
	return func(format string, args ...any) {
		t.Logf(indent+format, args...)
	}
}

func PrintProof(t *testing.T, p proof.Proof, level int) {
	t.Helper()
	log := withIndent(t, level)

	log("Seed: %s", p.Seed)
	log("  Key: %s", p.Key)
	log("  Steps: %d", p.Steps)
	log("  Zeroes: %d", p.Zeroes)
	log("  Digest: %s", p.Digest)
}

func PrintBlock(t *testing.T, b ipld.Block) {
	t.Helper()
	t.Logf("%s (%s)", b.Link(), SprintBytes(t, len(b.Bytes())))
	p, err := proof.FromBlock(b)
	if err != nil {
		t.Logf("  %s", err)
		return
	}
	PrintProof(t, p, 1)
	PrintModel(t, p)
}

func PrintNode(t *testing.T, n ipld.Node) {
	t.Helper()
	t.Log(printer.Sprint(n))
}

// PrintModel prints the data model form of a proof.
func PrintModel(t *testing.T, p proof.Proof) {
	t.Helper()
	PrintNode(t, bindnode.Wrap(p.Model(), pdm.Type()))
}

func SprintBytes(t *testing.T, b int) string {
	t.Helper()
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
