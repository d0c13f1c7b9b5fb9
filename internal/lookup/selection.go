package lookup

import (
	"strings"
	"usercheck/pkg/domain"
)

// ResolveSelection narrows catalog down to the sites a request asked for.
//
// Unless includeNSFW is set, NSFW sites are dropped except those explicitly
// requested. With no requested names the selection is the whole filtered
// catalog. Otherwise names are matched case-insensitively, preferring an exact
// match and then the first site in catalog order; duplicates collapse onto the
// canonical name and unmatched names are returned in missing, in the order
// they were requested. The selection keeps catalog order.
func ResolveSelection(catalog *domain.Catalog,
	requested []string,
	includeNSFW bool) (selection *domain.Catalog, missing []string) {
	if !includeNSFW {
		catalog = catalog.FilterNSFW(requested)
	}
	if len(requested) == 0 {
		return catalog, nil
	}

	byFold := make(map[string]string, catalog.Len())
	for _, name := range catalog.Names() {
		key := strings.ToLower(name)
		if _, ok := byFold[key]; !ok {
			byFold[key] = name
		}
	}

	wanted := make(map[string]struct{}, len(requested))
	for _, r := range requested {
		name := r
		if _, ok := catalog.Get(r); !ok {
			name, ok = byFold[strings.ToLower(r)]
			if !ok {
				missing = append(missing, r)

				continue
			}
		}
		wanted[name] = struct{}{}
	}

	selection = &domain.Catalog{}
	for _, s := range catalog.Sites() {
		if _, ok := wanted[s.Name]; ok {
			selection.Put(s)
		}
	}

	return selection, missing
}

// ApplySizeCap keeps the first maxSites entries of selection. A non-positive
// maxSites leaves it unchanged.
func ApplySizeCap(selection *domain.Catalog, maxSites int) *domain.Catalog {
	if maxSites <= 0 || selection.Len() <= maxSites {
		return selection
	}

	return selection.Head(maxSites)
}
