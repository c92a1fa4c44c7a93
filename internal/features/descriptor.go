// Package features holds the feature descriptors shown on the homepage and
// the helpers that load and check them.
package features

// DefaultIcon is the icon reference used by every authored descriptor.
const DefaultIcon = "img/crabbylogo.svg"

// Descriptor describes one marketing feature card.
//
// Description is an inline rich-text fragment; see package richtext for the
// markup it may contain.
type Descriptor struct {
	Title       string `yaml:"title" json:"title"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
}

// List is an ordered sequence of descriptors. Order is display order.
type List []Descriptor

var defaultList = List{
	{
		Title:       "Simplicity",
		Icon:        DefaultIcon,
		Description: "Crabby is designed with simplicity in mind. It's easy to learn and understand, making it perfect for beginners. Yet, it's powerful enough to handle complex tasks, making it a great choice for experienced developers as well.",
	},
	{
		Title:       "Efficiency",
		Icon:        DefaultIcon,
		Description: "Crabby is built for speed. It's optimized for performance, ensuring that your programs run as fast as possible. With Crabby, you can focus on writing great code, knowing that it will be executed efficiently.",
	},
	{
		Title:       "Versatility",
		Icon:        DefaultIcon,
		Description: "<span> Crabby </span> is a versatile language. It supports multiple programming paradigms, allowing you to choose the best approach for each task. Whether you prefer procedural, object-oriented, or functional programming, Crabby has you covered.",
	},
}

// Default returns the authored homepage features. Each call returns a fresh
// copy.
func Default() List {
	return defaultList.Clone()
}

// Clone returns a copy of the list.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Titles returns the titles in display order.
func (l List) Titles() []string {
	titles := make([]string, len(l))
	for i, d := range l {
		titles[i] = d.Title
	}
	return titles
}
