package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Node represents an entry in the output tree.
type Node struct {
	Name     string
	IsDir    bool
	Size     int64 // Relevant for files
	Children []*Node
}

// buildTree arranges the output files of results under a node named
// rootName. Failed files are left out; skipped files are kept since their
// output exists.
func buildTree(results []FileResult, rootName string) *Node {
	root := &Node{Name: rootName, IsDir: true}
	dirs := map[string]*Node{".": root}

	for _, r := range results {
		if r.Outcome == OutcomeError {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(filepath.Dir(r.RelPath), filepath.Base(r.OutputPath)))
		parts := strings.Split(rel, "/")

		parent, key := root, "."
		for _, dir := range parts[:len(parts)-1] {
			key = key + "/" + dir
			node, ok := dirs[key]
			if !ok {
				node = &Node{Name: dir, IsDir: true}
				parent.Children = append(parent.Children, node)
				dirs[key] = node
			}
			parent = node
		}
		parent.Children = append(parent.Children, &Node{
			Name: parts[len(parts)-1],
			Size: r.OutputSize,
		})
	}

	sortChildren(root)
	return root
}

// sortChildren recursively sorts the children of a node alphabetically.
func sortChildren(node *Node) {
	if !node.IsDir || len(node.Children) == 0 {
		return
	}
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		sortChildren(child)
	}
}

// printTree generates the string representation of the tree.
func printTree(root *Node) string {
	var builder strings.Builder
	builder.WriteString(root.Name)
	builder.WriteString("\n")
	printNode(&builder, root.Children, "")
	return builder.String()
}

func printNode(builder *strings.Builder, children []*Node, prefix string) {
	for i, node := range children {
		connector := "├── "
		newPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			newPrefix = prefix + "    "
		}

		builder.WriteString(prefix)
		builder.WriteString(connector)
		builder.WriteString(node.Name)
		if !node.IsDir {
			builder.WriteString(fmt.Sprintf(" (%s bytes)", formatBytes(node.Size)))
		}
		builder.WriteString("\n")

		if node.IsDir && len(node.Children) > 0 {
			printNode(builder, node.Children, newPrefix)
		}
	}
}

// formatSummary renders the end-of-run report.
func formatSummary(counters RunCounters, outputRoot string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString("PROCESSING COMPLETE\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Files processed successfully: %d\n", counters.Processed))
	if counters.Skipped > 0 {
		b.WriteString(fmt.Sprintf("Files skipped (already existed): %d\n", counters.Skipped))
	}
	if counters.Errored > 0 {
		b.WriteString(fmt.Sprintf("Files with errors: %d\n", counters.Errored))
	}
	b.WriteString(fmt.Sprintf("Total size: %s bytes → %s bytes\n",
		formatBytes(counters.InputBytes), formatBytes(counters.OutputBytes)))
	b.WriteString(fmt.Sprintf("Output location: %s\n", outputRoot))
	b.WriteString("Output naming: original_name.ext → original_name.ext" + OutputSuffix + "\n")
	return b.String()
}

// formatBytes renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func formatBytes(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
