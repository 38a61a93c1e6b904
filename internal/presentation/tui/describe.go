package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/loader"
	"github.com/aretw0/arbor/pkg/tree"
)

// Describe renders a load result as markdown: a summary table, one section
// per actor and one per unowned root, each tree as a nested list.
func Describe(title string, res *loader.Result) string {
	var sb strings.Builder
	actors := res.Actors()
	roots := res.Roots()

	fmt.Fprintf(&sb, "# %s\n\n", title)
	sb.WriteString("| Objects | Actors | Free roots |\n|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d |\n\n", res.Len(), len(actors), len(roots))

	for _, a := range actors {
		fmt.Fprintf(&sb, "## Actor %s (`%s`)\n\n", a.Name(), a.ID())
		if a.RootNode() == nil {
			sb.WriteString("_No root node._\n\n")
			continue
		}
		writeList(&sb, a.RootNode())
		sb.WriteString("\n")
	}
	for _, r := range roots {
		fmt.Fprintf(&sb, "## Tree `%s`\n\n", r.ID())
		writeList(&sb, r)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeList(sb *strings.Builder, root domain.Node) {
	tree.Walk(root, func(n domain.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(sb, "- **%s** `%s`", n.ID(), tree.KindOf(n))
		if name := tree.NameOf(n); name != "" {
			fmt.Fprintf(sb, " %q", name)
		}
		sb.WriteString("\n")
		return true
	})
}
