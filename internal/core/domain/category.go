// internal/core/domain/category.go
package domain

// Category is a result category name returned by the theHarvester service.
// The set of categories the service can return is open-ended; only the
// constants below are classified, everything else is unrecognized.
type Category string

const (
	CategoryTwitterPeople   Category = "twitter_people"
	CategoryLinkedInPeople  Category = "linkedin_people"
	CategoryInterestingURLs Category = "interesting_urls"
	CategoryLinkedInLinks   Category = "linkedin_links"
	CategoryTrelloURLs      Category = "trello_urls"
	CategoryIPs             Category = "ips"
	CategoryEmails          Category = "emails"
	CategoryHosts           Category = "hosts"
)

// KnownCategories lists every classified category.
func KnownCategories() []Category {
	return []Category{
		CategoryTwitterPeople,
		CategoryLinkedInPeople,
		CategoryInterestingURLs,
		CategoryLinkedInLinks,
		CategoryTrelloURLs,
		CategoryIPs,
		CategoryEmails,
		CategoryHosts,
	}
}

// Kind returns the artifact kind this category classifies into.
// ok is false for unrecognized categories.
func (c Category) Kind() (kind EventType, ok bool) {
	switch c {
	case CategoryTwitterPeople, CategoryLinkedInPeople:
		return EventTypeHumanName, true
	case CategoryInterestingURLs, CategoryLinkedInLinks, CategoryTrelloURLs:
		return EventTypeURLStatic, true
	case CategoryIPs:
		return EventTypeIPAddress, true
	case CategoryEmails:
		return EventTypeEmailAddr, true
	case CategoryHosts:
		return EventTypeDomainName, true
	default:
		return "", false
	}
}

// Known reports whether the category is classified.
func (c Category) Known() bool {
	_, ok := c.Kind()
	return ok
}

// RawHarvestResult es la respuesta del servicio: categoría -> lista de valores.
type RawHarvestResult map[Category][]string
