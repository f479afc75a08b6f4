package features

import (
	"fmt"
	"strings"
)

const (
	// mentionSubsets effectively means "n-grams of every length": no mention
	// span comes anywhere near this many tokens.
	mentionSubsets = 100
	siblingSubsets = 3
)

// Mention selects every node that carries cid as its mention identifier,
// anywhere under the root. It emits each contiguous span of the mention's
// nodes as a separate feature.
func Mention(cid string) *Template {
	return &Template{
		Label:    "MENTION",
		Selector: fmt.Sprintf(".//*[@cid='%s']", cid),
		Subsets:  mentionSubsets,
	}
}

// Get projects another template's nodes onto one attribute value each. It
// returns a new template; f itself is left untouched and stays usable on its
// own or under other projections.
func Get(f *Template, attrib string) *Template {
	return &Template{
		Label:    strings.ToUpper(attrib) + "-" + f.Label,
		Selector: f.Selector + "/@" + attrib,
		Subsets:  f.Subsets,
	}
}

// Left selects the siblings preceding another template's nodes, emitting
// n-grams of up to three of them.
func Left(f *Template) *Template {
	return &Template{
		Label:    "LEFT-OF-" + f.Label,
		Selector: f.Selector + "/preceding-sibling::*",
		Subsets:  siblingSubsets,
	}
}

// Right selects the siblings following another template's nodes, emitting
// n-grams of up to three of them.
func Right(f *Template) *Template {
	return &Template{
		Label:    "RIGHT-OF-" + f.Label,
		Selector: f.Selector + "/following-sibling::*",
		Subsets:  siblingSubsets,
	}
}
