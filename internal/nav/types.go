package nav

// Visibility controls which viewers may see a navigation item.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityAuthenticated Visibility = "authenticated"
)

// Position places an item in the primary or secondary navigation area.
type Position string

const (
	PositionPrimary   Position = "primary"
	PositionSecondary Position = "secondary"
)

// MaxLabelLength is the longest label accepted at validation time.
const MaxLabelLength = 50

// MaxDepth is the deepest level a navigation item may sit at. Depth 1 is the
// root list, depth 2 its children; anything deeper is rejected.
const MaxDepth = 2

// Item is a single entry in the navigation hierarchy as declared in
// configuration. Children are only permitted on root-level items.
type Item struct {
	ID         string     `yaml:"id" koanf:"id" json:"id"`
	Label      string     `yaml:"label" koanf:"label" json:"label"`
	Href       string     `yaml:"href" koanf:"href" json:"href"`
	Visibility Visibility `yaml:"visibility" koanf:"visibility" json:"visibility"`
	Position   Position   `yaml:"position" koanf:"position" json:"position"`
	Order      int        `yaml:"order" koanf:"order" json:"order"`
	Children   []Item     `yaml:"children,omitempty" koanf:"children" json:"children,omitempty"`
}
