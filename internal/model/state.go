package model

// State is everything a display surface needs to render one session.
type State struct {
	Palette   Palette       `json:"palette"`
	Favorites FavoritesList `json:"favorites"`

	// Copied is the hex most recently copied, or empty. There is one flag
	// for the whole session: every visible occurrence of that hex, in the
	// palette or in a favorite, shows as copied.
	Copied Color `json:"copied,omitempty"`
}

// IsSaved reports whether the current palette is already a favorite.
func (s State) IsSaved() bool {
	return s.Favorites.Contains(s.Palette)
}

// IsCopied reports whether c should currently show copied feedback.
func (s State) IsCopied(c Color) bool {
	return s.Copied != "" && s.Copied == c
}
