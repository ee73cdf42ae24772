package asciidoc

// Role names the structural or visual meaning a matcher detects.
type Role int

// Prefix roles, used by the line rewriter.
const (
	RoleNone Role = iota
	RoleHeading
	RoleChecked
	RoleUnchecked
	RoleCheckbox
	RoleOrdered
	RoleUnordered
	RoleLeadingSpace
)

// Inline and block roles, used by the classifier.
const (
	RoleHeadingLine Role = iota + 100
	RoleBold
	RoleItalic
	RoleSubscript
	RoleSuperscript
	RoleMonospace
	RoleOrderedItem
	RoleUnorderedItem
	RoleDescriptionTerm
	RoleAttributeDefinition
	RoleAttributeReference
	RoleLineComment
	RoleAdmonition
	RoleSquareBrackets
	RoleHighlight
	RoleCustom
	RoleUnderline
	RoleStrikethrough
	RoleHardLineBreak
	RoleDoubleSpaceLineEnding
	RoleLink
	RoleXref
	RoleImage
	RoleInclude
	RoleBlockTitle
	RoleHexColor
	RoleQuoteBlock
	RoleExampleBlock
	RoleListingBlock
	RoleLiteralBlock
	RoleSidebarBlock
	RoleCommentBlock
	RoleTableBlock
)

var roleNames = map[Role]string{
	RoleNone:                  "none",
	RoleHeading:               "heading",
	RoleChecked:               "checked",
	RoleUnchecked:             "unchecked",
	RoleCheckbox:              "checkbox",
	RoleOrdered:               "ordered",
	RoleUnordered:             "unordered",
	RoleLeadingSpace:          "leading-space",
	RoleHeadingLine:           "heading-line",
	RoleBold:                  "bold",
	RoleItalic:                "italic",
	RoleSubscript:             "subscript",
	RoleSuperscript:           "superscript",
	RoleMonospace:             "monospace",
	RoleOrderedItem:           "ordered-item",
	RoleUnorderedItem:         "unordered-item",
	RoleDescriptionTerm:       "description-term",
	RoleAttributeDefinition:   "attribute-definition",
	RoleAttributeReference:    "attribute-reference",
	RoleLineComment:           "line-comment",
	RoleAdmonition:            "admonition",
	RoleSquareBrackets:        "square-brackets",
	RoleHighlight:             "highlight",
	RoleCustom:                "custom-role",
	RoleUnderline:             "underline",
	RoleStrikethrough:         "strikethrough",
	RoleHardLineBreak:         "hard-line-break",
	RoleDoubleSpaceLineEnding: "double-space-line-ending",
	RoleLink:                  "link",
	RoleXref:                  "xref",
	RoleImage:                 "image",
	RoleInclude:               "include",
	RoleBlockTitle:            "block-title",
	RoleHexColor:              "hex-color",
	RoleQuoteBlock:            "quote-block",
	RoleExampleBlock:          "example-block",
	RoleListingBlock:          "listing-block",
	RoleLiteralBlock:          "literal-block",
	RoleSidebarBlock:          "sidebar-block",
	RoleCommentBlock:          "comment-block",
	RoleTableBlock:            "table-block",
}

// String returns the role's name.
func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// IsBlock reports whether r is a delimited block region.
func (r Role) IsBlock() bool {
	return r >= RoleQuoteBlock && r <= RoleTableBlock
}
