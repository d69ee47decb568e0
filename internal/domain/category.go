package domain

import "strings"

// Category is one of the fixed board categories a submission may carry.
type Category string

const (
	CategoryCRM             Category = "CRM"
	CategoryAmministrazione Category = "AMMINISTRAZIONE"
	CategoryConsole         Category = "CONSOLE"
	CategoryOperations      Category = "OPERATIONS (Cambi asseganzione, etc.)"
)

// Categories lists the allowed categories in board order.
var Categories = []Category{
	CategoryCRM,
	CategoryAmministrazione,
	CategoryConsole,
	CategoryOperations,
}

// ParseCategory validates label against the allow-list. Only surrounding
// whitespace is forgiven; the operations label must match byte-for-byte.
func ParseCategory(label string) (Category, bool) {
	trimmed := strings.TrimSpace(label)
	for _, c := range Categories {
		if string(c) == trimmed {
			return c, true
		}
	}
	return "", false
}

// IsOperations reports whether the category is the operations category.
func (c Category) IsOperations() bool {
	return strings.HasPrefix(strings.ToUpper(string(c)), "OPERATIONS")
}

func (c Category) String() string {
	return string(c)
}
