package sections

import (
	"fmt"

	"github.com/google/uuid"

	types "github.com/yungbote/portfolio-backend/internal/domain"
)

const (
	SectionHero           = "Hero"
	SectionAbout          = "About"
	SectionSkills         = "Skills"
	SectionProjects       = "Projects"
	SectionDataScienceLab = "Data Science Lab"
	SectionBlog           = "Blog"
	SectionCertificates   = "Certificates"
	SectionContact        = "Contact"
)

// DefaultOrder is the page layout used when the registry cannot be read.
// It must list every name in blockKeys; FallbackMismatch reports drift.
var DefaultOrder = []string{
	SectionHero,
	SectionAbout,
	SectionSkills,
	SectionProjects,
	SectionDataScienceLab,
	SectionBlog,
	SectionCertificates,
	SectionContact,
}

var blockKeys = map[string]string{
	SectionHero:           "hero",
	SectionAbout:          "about",
	SectionSkills:         "skills",
	SectionProjects:       "projects",
	SectionDataScienceLab: "data_science_lab",
	SectionBlog:           "blog",
	SectionCertificates:   "certificates",
	SectionContact:        "contact",
}

// BlockKey resolves a section name to its renderable block.
func BlockKey(name string) (string, bool) {
	k, ok := blockKeys[name]
	return k, ok
}

// BlockKeys lists every renderable block key in default order.
func BlockKeys() []string {
	out := make([]string, 0, len(DefaultOrder))
	for _, name := range DefaultOrder {
		if k, ok := blockKeys[name]; ok {
			out = append(out, k)
		}
	}
	return out
}

// FallbackSections returns DefaultOrder as visible sections with
// order_index equal to position. Ids are nil; the rows are not persisted.
func FallbackSections() []types.Section {
	out := make([]types.Section, 0, len(DefaultOrder))
	for i, name := range DefaultOrder {
		out = append(out, types.Section{ID: uuid.Nil, Name: name, IsVisible: true, OrderIndex: i})
	}
	return out
}

// FallbackMismatch lists renderable names missing from DefaultOrder and
// DefaultOrder names with no block. A missing name is dropped from the
// fallback page; it is reported, not corrected.
func FallbackMismatch() []string {
	var out []string
	inDefault := make(map[string]bool, len(DefaultOrder))
	for _, name := range DefaultOrder {
		inDefault[name] = true
		if _, ok := blockKeys[name]; !ok {
			out = append(out, fmt.Sprintf("%s: no block", name))
		}
	}
	for name := range blockKeys {
		if !inDefault[name] {
			out = append(out, fmt.Sprintf("%s: missing from default order", name))
		}
	}
	return out
}
