package triage

import "strings"

// DocumentHosts are the storage host fragments an attachment link must contain.
var DocumentHosts = []string{"drive.google.com", "docs.google.com"}

// FilterAttachments keeps string entries pointing at a document host.
// Order is preserved and duplicates are kept.
func FilterAttachments(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		link, ok := item.(string)
		if !ok {
			continue
		}
		for _, host := range DocumentHosts {
			if strings.Contains(link, host) {
				out = append(out, link)
				break
			}
		}
	}
	return out
}

// JoinAttachments renders links in the board's newline-separated text form.
func JoinAttachments(links []string) string {
	return strings.Join(links, "\n")
}
