package model

// Category is a named grouping node. A nil ParentCategoryID marks a root category.
type Category struct {
	ID               int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string `json:"name" gorm:"size:255;not null"`
	ParentCategoryID *int64 `json:"parentCategoryId" gorm:"index"`

	// Relations. Only present so the schema carries the self-referencing foreign key;
	// never serialized, parents are referenced by id.
	Parent *Category `json:"-" gorm:"foreignKey:ParentCategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentCategoryID == nil
}

// CategoryNode is a category with its direct children, used for tree responses.
type CategoryNode struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	ParentCategoryID *int64          `json:"parentCategoryId"`
	Children         []*CategoryNode `json:"children"`
}

// BuildCategoryTree arranges a flat category list into root nodes. Categories whose
// parent is missing from the list are treated as roots.
func BuildCategoryTree(categories []Category) []*CategoryNode {
	nodes := make(map[int64]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{
			ID:               c.ID,
			Name:             c.Name,
			ParentCategoryID: c.ParentCategoryID,
			Children:         []*CategoryNode{},
		}
	}

	roots := make([]*CategoryNode, 0)
	// Iterate the slice, not the map, to keep input order.
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentCategoryID != nil {
			if parent, ok := nodes[*c.ParentCategoryID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
