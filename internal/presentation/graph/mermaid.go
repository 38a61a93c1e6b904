package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/tree"
)

// Overlay contains tick progress to visualize on the graph.
type Overlay struct {
	Consumed []string // children a composite has moved past
	Current  []string // children each composite will tick next
}

type pendingLister interface {
	Children() []domain.Node
	Pending() []domain.Node
}

// Progress builds an overlay from the cursors of every composite below roots.
func Progress(roots ...domain.Node) *Overlay {
	o := &Overlay{}
	for _, root := range roots {
		tree.Walk(root, func(n domain.Node, _ int) bool {
			c, ok := n.(pendingLister)
			if !ok {
				return true
			}
			children, pending := c.Children(), c.Pending()
			done := len(children) - len(pending)
			for _, child := range children[:done] {
				o.Consumed = append(o.Consumed, child.ID())
			}
			if len(pending) > 0 {
				o.Current = append(o.Current, pending[0].ID())
			}
			return true
		})
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the trees below roots.
// It applies semantic styling:
// - Sequence: [[Subroutine]]
// - Selector: {{Hexagon}}
// - PassThrough / Invert: ([Stadium])
// - Leaves: [Rectangle]
// Composite edges are numbered in child order; decorator edges are dotted.
func GenerateMermaid(roots []domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, root := range roots {
		writeTree(&sb, root)
	}
	writeOverlay(&sb, overlay)
	return sb.String()
}

// GenerateActorsMermaid is GenerateMermaid with a circle per actor pointing
// at its root.
func GenerateActorsMermaid(actors []*tree.Actor, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, a := range actors {
		safeID := sanitizeMermaidID(a.ID())
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", safeID, escapeLabel(a.Name())))
		if root := a.RootNode(); root != nil {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(root.ID())))
			writeTree(&sb, root)
		}
	}
	writeOverlay(&sb, overlay)
	return sb.String()
}

func writeTree(sb *strings.Builder, root domain.Node) {
	tree.Walk(root, func(n domain.Node, _ int) bool {
		safeID := sanitizeMermaidID(n.ID())
		kind := tree.KindOf(n)

		opener, closer := "[", "]"
		switch kind {
		case domain.KindSequence:
			opener, closer = "[[", "]]"
		case domain.KindSelector:
			opener, closer = "{{", "}}"
		case domain.KindPassThrough, domain.KindInvert:
			opener, closer = "([", "])"
		}

		label := n.ID()
		if name := tree.NameOf(n); name != "" {
			label = name
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s <br/> %s\"%s\n", safeID, opener, escapeLabel(label), kind, closer))

		switch v := n.(type) {
		case interface{ Children() []domain.Node }:
			for i, child := range v.Children() {
				sb.WriteString(fmt.Sprintf("    %s -- \"%d\" --> %s\n", safeID, i+1, sanitizeMermaidID(child.ID())))
			}
		case interface{ Decoratee() domain.Node }:
			if d := v.Decoratee(); d != nil {
				arrow := "-.->"
				if kind == domain.KindInvert {
					arrow = "-. \"not\" .->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(d.ID())))
			}
		}
		return true
	})
}

func writeOverlay(sb *strings.Builder, overlay *Overlay) {
	if overlay == nil {
		return
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
	sb.WriteString("    classDef consumed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	seen := make(map[string]bool)
	for _, id := range overlay.Consumed {
		safeID := sanitizeMermaidID(id)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s consumed;\n", safeID))
		}
	}
	for _, id := range overlay.Current {
		if safeID := sanitizeMermaidID(id); safeID != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", safeID))
		}
	}
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_", "<", "_", ">", "_", ":", "_")
	return r.Replace(id)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
