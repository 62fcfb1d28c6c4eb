package utility

import (
	"regexp"
	"strings"
)

// decl is one CSS declaration
type decl struct {
	property string
	value    string
}

// staticUtilities need no value
var staticUtilities = map[string][]decl{
	"block":        {{"display", "block"}},
	"inline":       {{"display", "inline"}},
	"inline-block": {{"display", "inline-block"}},
	"flex":         {{"display", "flex"}},
	"inline-flex":  {{"display", "inline-flex"}},
	"grid":         {{"display", "grid"}},
	"contents":     {{"display", "contents"}},
	"hidden":       {{"display", "none"}},

	"flex-row":  {{"flex-direction", "row"}},
	"flex-col":  {{"flex-direction", "column"}},
	"flex-wrap": {{"flex-wrap", "wrap"}},
	"grow":      {{"flex-grow", "1"}},
	"shrink-0":  {{"flex-shrink", "0"}},

	"items-start":     {{"align-items", "flex-start"}},
	"items-center":    {{"align-items", "center"}},
	"items-end":       {{"align-items", "flex-end"}},
	"justify-start":   {{"justify-content", "flex-start"}},
	"justify-center":  {{"justify-content", "center"}},
	"justify-end":     {{"justify-content", "flex-end"}},
	"justify-between": {{"justify-content", "space-between"}},

	"static":   {{"position", "static"}},
	"relative": {{"position", "relative"}},
	"absolute": {{"position", "absolute"}},
	"fixed":    {{"position", "fixed"}},
	"sticky":   {{"position", "sticky"}},

	"italic":    {{"font-style", "italic"}},
	"underline": {{"text-decoration-line", "underline"}},
	"uppercase": {{"text-transform", "uppercase"}},
	"lowercase": {{"text-transform", "lowercase"}},
	"truncate": {
		{"overflow", "hidden"},
		{"text-overflow", "ellipsis"},
		{"white-space", "nowrap"},
	},

	"border":  {{"border-style", "solid"}, {"border-width", "1px"}},
	"rounded": {{"border-radius", "0.25rem"}},
}

// spacingUtilities map a prefix to the properties it sets
var spacingUtilities = map[string][]string{
	"p":    {"padding"},
	"px":   {"padding-inline"},
	"py":   {"padding-block"},
	"pt":   {"padding-top"},
	"pr":   {"padding-right"},
	"pb":   {"padding-bottom"},
	"pl":   {"padding-left"},
	"m":    {"margin"},
	"mx":   {"margin-inline"},
	"my":   {"margin-block"},
	"mt":   {"margin-top"},
	"mr":   {"margin-right"},
	"mb":   {"margin-bottom"},
	"ml":   {"margin-left"},
	"gap":  {"gap"},
	"w":    {"width"},
	"h":    {"height"},
	"size": {"width", "height"},
}

// negatable prefixes accept a leading "-"
var negatable = map[string]bool{
	"m": true, "mx": true, "my": true, "mt": true, "mr": true, "mb": true, "ml": true,
}

// colorUtilities map a prefix to the property taking a --color-* value
var colorUtilities = map[string]string{
	"text":   "color",
	"bg":     "background-color",
	"border": "border-color",
}

var numberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// generate returns the declarations for candidate, or false when unknown
func generate(candidate string, th *theme) ([]decl, bool) {
	if decls, ok := staticUtilities[candidate]; ok {
		return decls, true
	}

	negative := strings.HasPrefix(candidate, "-")
	name := strings.TrimPrefix(candidate, "-")

	root, value, ok := splitCandidate(name)
	if !ok {
		return nil, false
	}

	if props, ok := spacingUtilities[root]; ok {
		if negative && !negatable[root] {
			return nil, false
		}
		v, ok := spacingValue(root, value, negative)
		if !ok {
			return nil, false
		}
		return declsFor(props, v), true
	}

	if negative {
		return nil, false
	}

	if prop, ok := colorUtilities[root]; ok {
		if v, ok := arbitrary(value); ok {
			return []decl{{prop, v}}, true
		}
		if v, ok := th.resolve("color", value); ok {
			return []decl{{prop, v}}, true
		}
	}

	switch root {
	case "text":
		if v, ok := th.resolve("text", value); ok {
			return []decl{{"font-size", v}}, true
		}
	case "font":
		if v, ok := th.resolve("font-weight", value); ok {
			return []decl{{"font-weight", v}}, true
		}
		if v, ok := th.resolve("font", value); ok {
			return []decl{{"font-family", v}}, true
		}
	case "rounded":
		if value == "full" {
			return []decl{{"border-radius", "calc(infinity * 1px)"}}, true
		}
		if v, ok := th.resolve("radius", value); ok {
			return []decl{{"border-radius", v}}, true
		}
	}

	return nil, false
}

// splitCandidate splits "px-4" into ("px", "4"); arbitrary values stay intact
func splitCandidate(name string) (root, value string, ok bool) {
	// "bg-[#fff]": the dash before "[" separates root from value
	if i := strings.Index(name, "-["); i > 0 && strings.HasSuffix(name, "]") {
		return name[:i], name[i+1:], true
	}
	i := strings.Index(name, "-")
	if i <= 0 || i == len(name)-1 {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// spacingValue converts a spacing value to CSS
func spacingValue(root, value string, negative bool) (string, bool) {
	if v, ok := arbitrary(value); ok {
		if negative {
			return "calc(" + v + " * -1)", true
		}
		return v, true
	}

	switch value {
	case "px":
		if negative {
			return "-1px", true
		}
		return "1px", true
	case "auto":
		if negative || strings.HasPrefix(root, "p") || root == "gap" {
			return "", false
		}
		return "auto", true
	case "full":
		if root == "w" || root == "h" || root == "size" {
			return "100%", true
		}
		return "", false
	}

	if !numberPattern.MatchString(value) {
		return "", false
	}
	if negative {
		return "calc(var(--spacing) * -" + value + ")", true
	}
	return "calc(var(--spacing) * " + value + ")", true
}

// arbitrary unwraps "[3px]" into "3px"; underscores become spaces
func arbitrary(value string) (string, bool) {
	if len(value) < 3 || value[0] != '[' || value[len(value)-1] != ']' {
		return "", false
	}
	return strings.ReplaceAll(value[1:len(value)-1], "_", " "), true
}

func declsFor(props []string, value string) []decl {
	decls := make([]decl, 0, len(props))
	for _, p := range props {
		decls = append(decls, decl{p, value})
	}
	return decls
}
