package errors

import (
	"strings"
	"unicode"
)

// ValidateAnchorName validates an element anchor name.
// Anchor names become TikZ node names, so they must stay within the character
// set TikZ accepts inside a node identifier. Uniqueness within a diagram is
// deliberately not enforced here; unresolved or colliding anchors surface as
// LaTeX errors at compile time.
func ValidateAnchorName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAnchor, "anchor name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidAnchor, "anchor name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAnchor, "anchor name contains control characters")
		}
	}

	// Characters with special meaning in TikZ node names or coordinate
	// expressions would silently corrupt the emitted document.
	if strings.ContainsAny(name, "{}()[]\\,=") {
		return New(ErrCodeInvalidAnchor, "anchor name contains reserved characters: %q", name)
	}

	return nil
}

// ValidateShape validates box geometry. Width and height must be strictly
// positive; depth is accepted as-is because flat elements (connections,
// captions) legitimately use zero depth.
func ValidateShape(width, height float64) error {
	if width <= 0 {
		return New(ErrCodeInvalidGeometry, "width must be positive, got %g", width)
	}
	if height <= 0 {
		return New(ErrCodeInvalidGeometry, "height must be positive, got %g", height)
	}
	return nil
}

// ValidateOutputFormat validates a secondary artifact format name.
func ValidateOutputFormat(format string) error {
	switch format {
	case "png", "svg":
		return nil
	default:
		return New(ErrCodeInvalidFormat, "format must be 'png' or 'svg', got %q", format)
	}
}
