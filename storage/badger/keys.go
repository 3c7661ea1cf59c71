package badger

import "fmt"

// Key prefixes for different data types
const (
	itemPrefix         = "txtitem"
	itemCategoryPrefix = "txtitemcat"
)

// makeItemKey generates a key for an item by id.
func makeItemKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", itemPrefix, id))
}

// makeItemCategoryKey generates a composite key for the category index.
// Format: prefix:category:id
func makeItemCategoryKey(category, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", itemCategoryPrefix, category, id))
}

// makePartialItemCategoryKey generates a partial key for category queries.
// Format: prefix:category:
func makePartialItemCategoryKey(category string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", itemCategoryPrefix, category))
}
