package breadcrumb

// Segment is one step in a breadcrumb trail. The final segment is the active
// one: it carries no link and names the current page.
type Segment struct {
	Label    string `json:"label"`
	Href     string `json:"href,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Trail is the derived breadcrumb state for one route. It is recomputed on
// every route change and never persisted.
type Trail struct {
	Segments       []Segment       `json:"segments"`
	CurrentPage    string          `json:"current_page"`
	FullPath       string          `json:"full_path"`
	IsHomePage     bool            `json:"is_home_page"`
	StructuredData *BreadcrumbList `json:"structured_data,omitempty"`
}

// BreadcrumbList is the schema.org structured-data mirror of a trail.
// Renderers embed it verbatim as a JSON-LD block for search engines.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is a single schema.org ListItem. Item is omitted for the active
// segment, which by contract has no link.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}
