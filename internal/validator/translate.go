package validator

import (
	"sort"

	"github.com/couchcryptid/taf-validation-service/internal/schema"
)

// TranslateReport converts a hierarchical validation report into
// human-readable messages keyed by instance pointer. Findings without a
// message in the map are dropped; near-duplicate instance paths are
// collapsed so the most specific pointer survives.
func TranslateReport(report *schema.Report, messages schema.MessageMap) map[string][]string {
	collected := make(map[string]map[string]struct{})
	for _, finding := range report.Findings {
		pointers := make(map[string]map[string]struct{})
		collectSchemaErrors(finding, pointers)

		for pointer, keywords := range pointers {
			byKeyword, ok := messages[pointer]
			if !ok {
				continue
			}
			for keyword := range keywords {
				message, ok := byKeyword[keyword]
				if !ok {
					continue
				}
				for path := range instancePathsFor(finding, pointer) {
					if collected[path] == nil {
						collected[path] = make(map[string]struct{})
					}
					collected[path][message] = struct{}{}
				}
			}
		}
	}
	return dedupeNearDuplicatePaths(collected)
}

// collectSchemaErrors unions the keywords raised per schema pointer across a
// report subtree.
func collectSchemaErrors(node *schema.ReportNode, into map[string]map[string]struct{}) {
	if node == nil {
		return
	}
	if node.Schema != nil && node.Keyword != "" {
		pointer := node.Schema.Pointer
		if into[pointer] == nil {
			into[pointer] = make(map[string]struct{})
		}
		into[pointer][node.Keyword] = struct{}{}
	}
	for _, sub := range node.Reports {
		collectSchemaErrors(sub, into)
	}
}

// instancePathsFor collects the instance pointers of every node in the
// subtree raised by the given schema pointer.
func instancePathsFor(node *schema.ReportNode, pointer string) map[string]struct{} {
	paths := make(map[string]struct{})
	gatherInstancePaths(node, pointer, paths)
	return paths
}

func gatherInstancePaths(node *schema.ReportNode, pointer string, paths map[string]struct{}) {
	if node == nil {
		return
	}
	if node.Schema != nil && node.Schema.Pointer == pointer && node.Instance != nil {
		paths[node.Instance.Pointer] = struct{}{}
	}
	for _, sub := range node.Reports {
		gatherInstancePaths(sub, pointer, paths)
	}
}

// dedupeNearDuplicatePaths keeps an instance path only when some later
// (sorted) path is not a supersequence of it; scanning stops at the first
// such path. The very last path is always kept. This collapses the stacks of
// related pointers a schema error typically produces into the most specific
// one.
func dedupeNearDuplicatePaths(collected map[string]map[string]struct{}) map[string][]string {
	if len(collected) == 0 {
		return map[string][]string{}
	}
	keys := make([]string, 0, len(collected))
	for k := range collected {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	final := make(map[string][]string)
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if !isSubsequence(keys[i], keys[j]) {
				final[keys[i]] = sortedMessages(collected[keys[i]])
				break
			}
		}
	}
	last := keys[len(keys)-1]
	final[last] = sortedMessages(collected[last])
	return final
}

// isSubsequence reports whether a is a (not necessarily contiguous)
// subsequence of b. Equivalent to LCS(a, b) == len(a) without the matrix.
func isSubsequence(a, b string) bool {
	i := 0
	for j := 0; i < len(a) && j < len(b); j++ {
		if a[i] == b[j] {
			i++
		}
	}
	return i == len(a)
}

func sortedMessages(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
